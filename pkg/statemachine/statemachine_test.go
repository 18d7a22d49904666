package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tickjwt/pkg/statemachine"
)

const (
	received  = statemachine.StringState("received")
	verifying = statemachine.StringState("verifying")
	verified  = statemachine.StringState("verified")
	rejected  = statemachine.StringState("rejected")

	dispatch = statemachine.StringEvent("dispatch")
	settle   = statemachine.StringEvent("settle")
	fail     = statemachine.StringEvent("fail")
)

func TestMachine_Transitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sm := statemachine.MustNew(received,
		statemachine.WithTransition(received, verifying, dispatch),
		statemachine.WithTransition(received, rejected, fail),
		statemachine.WithTransition(verifying, verified, settle),
	)

	assert.True(t, sm.Is(received))
	assert.False(t, sm.Terminal())
	assert.True(t, sm.CanFire(ctx, dispatch, nil))
	assert.False(t, sm.CanFire(ctx, settle, nil))

	require.NoError(t, sm.Fire(ctx, dispatch, nil))
	assert.Equal(t, verifying, sm.Current())

	require.NoError(t, sm.Fire(ctx, settle, nil))
	assert.True(t, sm.Is(verified))
	assert.True(t, sm.Terminal())

	err := sm.Fire(ctx, dispatch, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, statemachine.ErrNoTransition)
}

func TestMachine_Guards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	onlyTrue := func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
		ok, _ := data.(bool)
		return ok
	}

	sm := statemachine.MustNew(verifying,
		statemachine.WithTransition(verifying, verified, settle, statemachine.WithGuard(onlyTrue)),
	)

	err := sm.Fire(ctx, settle, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, statemachine.ErrGuardRejected)
	var terr *statemachine.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, settle.Name(), terr.Event)
	assert.Equal(t, verifying.Name(), terr.State)
	assert.True(t, sm.Is(verifying))

	require.NoError(t, sm.Fire(ctx, settle, true))
	assert.True(t, sm.Is(verified))
}

func TestMachine_GuardBranching(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	isValid := func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
		return data == true
	}

	sm := statemachine.MustNew(verifying,
		statemachine.WithTransition(verifying, verified, settle, statemachine.WithGuard(isValid)),
		statemachine.WithTransition(verifying, rejected, settle),
	)

	require.NoError(t, sm.Fire(ctx, settle, false))
	assert.True(t, sm.Is(rejected))
}

func TestMachine_Actions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var seen []string
	record := func(_ context.Context, c statemachine.Change, _ any) error {
		seen = append(seen, c.From.Name()+"->"+c.To.Name())
		return nil
	}
	boom := errors.New("boom")
	failing := func(context.Context, statemachine.Change, any) error {
		return boom
	}

	sm := statemachine.MustNew(received,
		statemachine.WithTransition(received, verifying, dispatch, statemachine.WithAction(record)),
		statemachine.WithTransition(verifying, verified, settle, statemachine.WithAction(failing)),
	)

	require.NoError(t, sm.Fire(ctx, dispatch, nil))
	assert.Equal(t, []string{"received->verifying"}, seen)

	err := sm.Fire(ctx, settle, nil)
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "verifying -settle-> verified: boom")
	assert.True(t, sm.Is(verifying))
}

func TestMachine_Observer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var events []string
	sm := statemachine.MustNew(received,
		statemachine.WithTransition(received, rejected, fail),
		statemachine.WithObserver(func(_ context.Context, c statemachine.Change) {
			events = append(events, c.String())
		}),
	)

	require.NoError(t, sm.Fire(ctx, fail, nil))
	assert.Equal(t, []string{"received -fail-> rejected"}, events)
}

func TestMachine_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	_, err := statemachine.New(nil)
	assert.Error(t, err)

	_, err = statemachine.New(received, statemachine.WithTransition(nil, verifying, dispatch))
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	assert.Panics(t, func() {
		statemachine.MustNew(received, statemachine.WithTransition(received, nil, dispatch))
	})

	sm := statemachine.MustNew(received)
	assert.ErrorIs(t, sm.Fire(context.Background(), nil, nil), statemachine.ErrInvalidEvent)
	assert.False(t, sm.CanFire(context.Background(), nil, nil))
	assert.False(t, sm.Is(nil))
}

func TestMachine_Concurrency(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sm := statemachine.MustNew(received,
		statemachine.WithTransition(received, verifying, dispatch),
	)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sm.Fire(ctx, dispatch, nil) == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.True(t, sm.Is(verifying))
}
