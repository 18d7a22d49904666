package jwt

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tickjwt/pkg/async"
	"github.com/dmitrymomot/tickjwt/pkg/jsonvalue"
	"github.com/dmitrymomot/tickjwt/pkg/logger"
	"github.com/dmitrymomot/tickjwt/pkg/statemachine"
)

// Request lifecycle states.
const (
	StateReceived  = statemachine.StringState("received")
	StateVerifying = statemachine.StringState("verifying")
	StateVerified  = statemachine.StringState("verified")
	StateRejected  = statemachine.StringState("rejected")
)

const (
	eventDispatch = statemachine.StringEvent("dispatch")
	eventSettle   = statemachine.StringEvent("settle")
	eventFail     = statemachine.StringEvent("fail")
)

// Callback receives a finished request. It runs on the scheduler tick that
// completes the request, exactly once per Decode call.
type Callback func(*Request)

// Result is the outcome of one Decode call. Header and Payload are set once
// both parsed; Success is true only for a verified signature.
type Result struct {
	Success   bool
	Header    jsonvalue.Value
	Payload   jsonvalue.Value
	Signature []byte
	Err       error
}

// Request tracks a single Decode call.
type Request struct {
	id       uuid.UUID
	token    string
	callback Callback
	machine  statemachine.Machine
	future   *async.Future[Result]
	resolve  async.Resolver[Result]

	mu     sync.Mutex
	result Result
}

func newRequest(token string, cb Callback, log *slog.Logger) *Request {
	r := &Request{
		id:       uuid.New(),
		token:    token,
		callback: cb,
	}
	r.future, r.resolve = async.NewPromise[Result]()

	settled := func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
		return data == nil
	}
	r.machine = statemachine.MustNew(StateReceived,
		statemachine.WithTransition(StateReceived, StateVerifying, eventDispatch),
		statemachine.WithTransition(StateReceived, StateRejected, eventFail),
		statemachine.WithTransition(StateVerifying, StateVerified, eventSettle, statemachine.WithGuard(settled)),
		statemachine.WithTransition(StateVerifying, StateRejected, eventSettle),
		statemachine.WithTransition(StateVerifying, StateRejected, eventFail),
		statemachine.WithObserver(func(ctx context.Context, c statemachine.Change) {
			log.DebugContext(ctx, "request transition",
				slog.String("from", c.From.Name()),
				logger.State(c.To.Name()),
				logger.Event(c.Event.Name()),
			)
		}),
	)
	return r
}

// ID returns the correlation id assigned when the request was created.
func (r *Request) ID() uuid.UUID { return r.id }

// Token returns the compact token as passed to Decode.
func (r *Request) Token() string { return r.token }

// State returns the current lifecycle state name.
func (r *Request) State() string { return r.machine.Current().Name() }

// Done reports whether the result has been delivered.
func (r *Request) Done() bool { return r.future.IsComplete() }

// Result returns the request outcome. It is complete only after the
// callback has run or Wait has resolved.
func (r *Request) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Success reports whether the signature was verified.
func (r *Request) Success() bool { return r.Result().Success }

// Err returns the failure reason, or nil for a verified token.
func (r *Request) Err() error { return r.Result().Err }

// Header returns the parsed header, or the zero Value if parsing did not
// get that far.
func (r *Request) Header() jsonvalue.Value { return r.Result().Header }

// Payload returns the parsed payload, or the zero Value.
func (r *Request) Payload() jsonvalue.Value { return r.Result().Payload }

// Wait returns a future resolved with the final Result just before the
// callback runs. The future's error is always nil; failures are reported in
// Result.Err.
func (r *Request) Wait() *async.Future[Result] { return r.future }

func (r *Request) setParsed(header, payload jsonvalue.Value, signature []byte) {
	r.mu.Lock()
	r.result.Header = header
	r.result.Payload = payload
	r.result.Signature = signature
	r.mu.Unlock()
}

func (r *Request) finish(success bool, err error) Result {
	r.mu.Lock()
	r.result.Success = success
	r.result.Err = err
	res := r.result
	r.mu.Unlock()
	return res
}
