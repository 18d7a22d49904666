package async_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tickjwt/pkg/async"
)

func TestPromise_ResolveOnce(t *testing.T) {
	t.Parallel()

	future, resolve := async.NewPromise[int]()
	assert.False(t, future.IsComplete())

	resolve(42, nil)
	resolve(7, errors.New("ignored"))

	require.True(t, future.IsComplete())
	result, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestFuture_OnComplete(t *testing.T) {
	t.Parallel()

	t.Run("listener runs inside resolve", func(t *testing.T) {
		t.Parallel()
		future, resolve := async.NewPromise[string]()

		var got []string
		future.OnComplete(func(s string, _ error) { got = append(got, "first:"+s) })
		future.OnComplete(func(s string, _ error) { got = append(got, "second:"+s) })
		assert.Empty(t, got)

		resolve("ok", nil)
		assert.Equal(t, []string{"first:ok", "second:ok"}, got)

		resolve("again", nil)
		assert.Len(t, got, 2)
	})

	t.Run("late listener runs immediately", func(t *testing.T) {
		t.Parallel()
		expectedErr := errors.New("failed")
		future := async.Resolved(false, expectedErr)

		called := false
		future.OnComplete(func(v bool, err error) {
			called = true
			assert.False(t, v)
			assert.ErrorIs(t, err, expectedErr)
		})
		assert.True(t, called)
	})
}

func TestFuture_AwaitFromAnotherGoroutine(t *testing.T) {
	t.Parallel()

	future, resolve := async.NewPromise[int]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		resolve(1, nil)
	}()

	result, err := future.AwaitWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, result)

	select {
	case <-future.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	future, _ := async.NewPromise[string]()
	result, err := future.AwaitWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
	assert.Empty(t, result)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	futures := make([]*async.Future[int], 3)
	resolvers := make([]async.Resolver[int], 3)
	for i := range futures {
		futures[i], resolvers[i] = async.NewPromise[int]()
	}

	var wg sync.WaitGroup
	for i, resolve := range resolvers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resolve(i+1, nil)
		}()
	}

	results, err := async.WaitAll(futures...)
	wg.Wait()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, results)
}

func TestWaitAll_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("second failed")
	results, err := async.WaitAll(
		async.Resolved(1, nil),
		async.Resolved(0, expectedErr),
		async.Resolved(3, nil),
	)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, []int{1, 0, 0}, results)
}
