// Package scheduler implements the cooperative tick loop that hosts token
// decoding and signature verification.
//
// A tick is one discrete step of the host. Work is never executed in the tick
// that scheduled it: After(1, fn) runs fn during the next call to Tick. Within
// a tick, tasks run in the order they were scheduled.
//
// Tests usually drive the scheduler by hand with Tick or RunUntilIdle, while
// long-running processes call Run which advances one tick per interval.
//
// # Usage
//
//	sched := scheduler.New(scheduler.WithInterval(16 * time.Millisecond))
//	sched.After(1, func() { fmt.Println("next tick") })
//	sched.Tick()
//
//	// or, in a service:
//	go sched.Run(ctx)
package scheduler
