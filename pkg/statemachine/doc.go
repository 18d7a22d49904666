// Package statemachine provides a small finite-state-machine used to track
// the lifecycle of decode requests.
//
// States and events are anything with a Name; StringState and StringEvent
// cover the common case. Transitions are declared up front with options, may
// carry Guards that veto them and Actions that run before the state changes,
// and Observers receive a Change after every completed transition.
//
// # Usage
//
//	const (
//	    Received  = statemachine.StringState("received")
//	    Verifying = statemachine.StringState("verifying")
//	    Dispatch  = statemachine.StringEvent("dispatch")
//	)
//
//	machine := statemachine.MustNew(Received,
//	    statemachine.WithTransition(Received, Verifying, Dispatch),
//	    statemachine.WithObserver(func(ctx context.Context, c statemachine.Change) {
//	        log.DebugContext(ctx, "transition", "change", c.String())
//	    }),
//	)
//
//	_ = machine.Fire(ctx, Dispatch, nil)
//
// # Error Handling
//
// When Fire returns an error you can inspect it using helper functions:
//
//	if errors.Is(err, statemachine.ErrNoTransition)  { /* ... */ }
//	if errors.Is(err, statemachine.ErrGuardRejected) { /* ... */ }
//
// # Concurrency
//
// The in-memory Machine guards its state with a RWMutex. Observers run after the
// lock is released, so they may read the machine.
package statemachine
