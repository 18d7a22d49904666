package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: from, to and event are required")
	ErrInvalidEvent      = errors.New("statemachine: event is required")
	ErrNoTransition      = errors.New("statemachine: no transition for event")
	ErrGuardRejected     = errors.New("statemachine: transition rejected by guards")
)

// TransitionError reports a Fire call that could not move the machine.
// Reason is ErrNoTransition or ErrGuardRejected.
type TransitionError struct {
	State  string
	Event  string
	Reason error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: state %q, event %q", e.Reason, e.State, e.Event)
}

func (e *TransitionError) Unwrap() error { return e.Reason }
