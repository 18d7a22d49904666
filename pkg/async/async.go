package async

import (
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation that is
// completed by whoever holds its Resolver, typically a scheduler task.
type Future[U any] struct {
	mu        sync.Mutex
	result    U
	err       error
	completed bool
	listeners []func(U, error)
	done      chan struct{}
}

// Resolver completes a Future. Only the first call has any effect.
type Resolver[U any] func(U, error)

// NewPromise creates a pending Future and the function that completes it.
// Listeners registered with OnComplete run synchronously inside the resolver
// call, so on a tick-driven host they run in the resolving tick.
func NewPromise[U any]() (*Future[U], Resolver[U]) {
	f := &Future[U]{done: make(chan struct{})}
	return f, f.resolve
}

// Resolved returns an already completed Future.
func Resolved[U any](result U, err error) *Future[U] {
	f, resolve := NewPromise[U]()
	resolve(result, err)
	return f
}

func (f *Future[U]) resolve(result U, err error) {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return
	}
	f.result = result
	f.err = err
	f.completed = true
	listeners := f.listeners
	f.listeners = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(result, err)
	}
}

// OnComplete registers fn to run once the Future completes. If it already
// has, fn runs immediately on the caller's goroutine.
func (f *Future[U]) OnComplete(fn func(U, error)) {
	if fn == nil {
		return
	}

	f.mu.Lock()
	if !f.completed {
		f.listeners = append(f.listeners, fn)
		f.mu.Unlock()
		return
	}
	result, err := f.result, f.err
	f.mu.Unlock()

	fn(result, err)
}

// Await waits for the Future to complete and returns its result and error.
// It must not be called from the goroutine that drives the resolver, or it
// will block forever.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for the Future to complete with a timeout.
// If the timeout occurs before completion, returns ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the Future is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed on completion, for use in select statements.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// WaitAll waits for all futures to complete and returns a slice of their results and an error
// if any of the futures returned an error.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
