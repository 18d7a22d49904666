package statemachine

import (
	"fmt"
)

// Option configures a machine during construction.
type Option func(*memoryMachine) error

// TransitionOption configures a single transition with guards and actions.
type TransitionOption func(*Transition)

// New returns an in-memory Machine starting in initialState.
func New(initialState State, opts ...Option) (Machine, error) {
	if initialState == nil {
		return nil, fmt.Errorf("initial state cannot be nil")
	}

	sm := newMemoryMachine(initialState)

	for _, opt := range opts {
		if err := opt(sm); err != nil {
			return nil, err
		}
	}

	return sm, nil
}

// MustNew is like New but panics if an option fails.
func MustNew(initialState State, opts ...Option) Machine {
	sm, err := New(initialState, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return sm
}

// WithTransition adds a single transition to the state machine.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(sm *memoryMachine) error {
		t := Transition{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		return sm.addTransition(t)
	}
}

// WithObserver registers a callback invoked after each completed transition.
func WithObserver(observer Observer) Option {
	return func(sm *memoryMachine) error {
		if observer != nil {
			sm.observers = append(sm.observers, observer)
		}
		return nil
	}
}

// WithGuard adds a single guard to a transition.
func WithGuard(guard Guard) TransitionOption {
	return func(t *Transition) {
		if guard != nil {
			t.Guards = append(t.Guards, guard)
		}
	}
}

// WithAction adds a single action to a transition.
func WithAction(action Action) TransitionOption {
	return func(t *Transition) {
		if action != nil {
			t.Actions = append(t.Actions, action)
		}
	}
}
