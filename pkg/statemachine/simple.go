package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// memoryMachine keeps the transition table keyed by state name, then event name.
type memoryMachine struct {
	currentState State
	transitions  map[string]map[string][]Transition
	observers    []Observer
	mu           sync.RWMutex
}

func newMemoryMachine(initialState State) *memoryMachine {
	return &memoryMachine{
		currentState: initialState,
		transitions:  make(map[string]map[string][]Transition),
	}
}

func (sm *memoryMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

// Is reports whether the machine is currently in state.
func (sm *memoryMachine) Is(state State) bool {
	if state == nil {
		return false
	}
	return sm.Current().Name() == state.Name()
}

// Terminal reports whether no transition leaves the current state.
func (sm *memoryMachine) Terminal() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.transitions[sm.currentState.Name()]) == 0
}

func (sm *memoryMachine) addTransition(t Transition) error {
	if t.From == nil || t.To == nil || t.Event == nil {
		return ErrInvalidTransition
	}

	from, event := t.From.Name(), t.Event.Name()
	if _, ok := sm.transitions[from]; !ok {
		sm.transitions[from] = make(map[string][]Transition)
	}

	sm.transitions[from][event] = append(sm.transitions[from][event], t)
	return nil
}

// match returns the first transition whose guards all pass. Callers hold mu.
func (sm *memoryMachine) match(ctx context.Context, event Event, data any) (*Transition, error) {
	from, name := sm.currentState.Name(), event.Name()

	transitions := sm.transitions[from][name]
	if len(transitions) == 0 {
		return nil, &TransitionError{State: from, Event: name, Reason: ErrNoTransition}
	}

	for i, t := range transitions {
		passed := true
		for _, guard := range t.Guards {
			if guard != nil && !guard(ctx, sm.currentState, event, data) {
				passed = false
				break
			}
		}
		if passed {
			return &transitions[i], nil
		}
	}

	return nil, &TransitionError{State: from, Event: name, Reason: ErrGuardRejected}
}

func (sm *memoryMachine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	sm.mu.Lock()
	t, err := sm.match(ctx, event, data)
	if err != nil {
		sm.mu.Unlock()
		return err
	}

	change := Change{From: sm.currentState, To: t.To, Event: event}
	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, change, data); err != nil {
			sm.mu.Unlock()
			return fmt.Errorf("%s: %w", change, err)
		}
	}
	sm.currentState = t.To
	observers := sm.observers
	sm.mu.Unlock()

	for _, observe := range observers {
		observe(ctx, change)
	}
	return nil
}

func (sm *memoryMachine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()
	_, err := sm.match(ctx, event, data)
	return err == nil
}
