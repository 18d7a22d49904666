// Package async provides a small generic Future used to hand results of
// multi-tick computations back to callers.
//
// A Future is created together with its Resolver by NewPromise. The producer
// (for example a verifier task running on the tick scheduler) calls the
// resolver exactly once; later calls are ignored. Consumers either register a
// listener with OnComplete, which runs synchronously inside the resolving
// call, or block from another goroutine with Await / AwaitWithTimeout.
//
// # Usage
//
//	future, resolve := async.NewPromise[bool]()
//	future.OnComplete(func(ok bool, err error) {
//	    fmt.Println("verified:", ok)
//	})
//	sched.After(1, func() { resolve(true, nil) })
//
// # Error Handling
//
// The package does not introduce custom error types beyond ErrTimeout,
// returned by AwaitWithTimeout. Errors passed to the resolver are handed
// through unchanged.
//
// # Performance Considerations
//
// A Future is a mutex, a channel and a listener slice. Listeners run on the
// resolving goroutine, so they should be short and must not call Await on a
// Future that the same goroutine is expected to resolve.
package async
