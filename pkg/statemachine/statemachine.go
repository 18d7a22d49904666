package statemachine

import (
	"context"
)

// State is a named lifecycle stage, such as "received" or "verifying".
type State interface {
	Name() string
}

// Event is a named input that moves a machine between states.
type Event interface {
	Name() string
}

// Change describes one completed step: the machine left From on Event and
// entered To.
type Change struct {
	From  State
	To    State
	Event Event
}

// String renders the change as "from -event-> to".
func (c Change) String() string {
	return c.From.Name() + " -" + c.Event.Name() + "-> " + c.To.Name()
}

// Guard vetoes a transition when it returns false. data is the value passed
// to Fire.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Action runs while the machine still sits in c.From. An error leaves the
// machine where it was.
type Action func(ctx context.Context, c Change, data any) error

// Observer sees every change after it is applied.
type Observer func(ctx context.Context, c Change)

// Transition is one edge of the table. Several transitions may share From and
// Event; the first whose guards all pass is taken.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	Actions []Action
}

// Machine tracks a single current state.
type Machine interface {
	Current() State
	Is(state State) bool
	// Terminal reports whether no edge leaves the current state.
	Terminal() bool
	Fire(ctx context.Context, event Event, data any) error
	CanFire(ctx context.Context, event Event, data any) bool
}

// StringState is a State named by its own value.
type StringState string

func (s StringState) Name() string { return string(s) }

// StringEvent is an Event named by its own value.
type StringEvent string

func (e StringEvent) Name() string { return string(e) }
