package jwt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/dmitrymomot/tickjwt/pkg/jsonvalue"
	"github.com/dmitrymomot/tickjwt/pkg/logger"
	"github.com/dmitrymomot/tickjwt/pkg/rsakey"
	"github.com/dmitrymomot/tickjwt/pkg/scheduler"
	"github.com/dmitrymomot/tickjwt/pkg/statemachine"
	"github.com/dmitrymomot/tickjwt/pkg/verifier"
)

// Decoder splits compact tokens, parses their header and payload, and drives
// signature verification on a tick scheduler. Every Decode call completes
// through its callback on a later tick, never synchronously.
type Decoder struct {
	sched        *scheduler.Scheduler
	algorithm    AlgorithmKind
	verifiers    map[AlgorithmKind]verifier.Verifier
	claims       ClaimValidator
	signingInput SigningInputMode
	logger       *slog.Logger
	metrics      *metrics

	mu      sync.RWMutex
	result  bool
	header  jsonvalue.Value
	payload jsonvalue.Value
}

// New creates a Decoder on sched. Unless WithVerifier replaces it, an RS256
// verifier bound to the same scheduler is created.
func New(sched *scheduler.Scheduler, opts ...Option) (*Decoder, error) {
	if sched == nil {
		return nil, ErrNilScheduler
	}

	o := &decoderOptions{
		algorithm: RS256,
		verifiers: make(map[AlgorithmKind]verifier.Verifier),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	// Records logged with a decode context carry its request id.
	log := slog.New(logger.NewContextHandler(o.logger.Handler(), LoggerExtractor()))

	if _, ok := o.verifiers[RS256]; !ok {
		vopts := append([]verifier.Option{verifier.WithLogger(log)}, o.verifierOpts...)
		rs, err := verifier.NewRS256(sched, vopts...)
		if err != nil {
			return nil, fmt.Errorf("jwt: create rs256 verifier: %w", err)
		}
		o.verifiers[RS256] = rs
	}

	d := &Decoder{
		sched:        sched,
		algorithm:    o.algorithm,
		verifiers:    o.verifiers,
		claims:       o.claims,
		signingInput: o.signingInput,
		logger:       log.With(logger.Component("jwt")),
	}

	if o.registerer != nil {
		m, err := newMetrics(o.registerer)
		if err != nil {
			return nil, fmt.Errorf("jwt: register metrics: %w", err)
		}
		d.metrics = m
	}

	return d, nil
}

// Algorithm returns the configured algorithm kind.
func (d *Decoder) Algorithm() AlgorithmKind { return d.algorithm }

// SetPublicKey installs key on the RS256 verifier. It fails with
// ErrKeyNotSupported when the installed verifier does not take keys.
func (d *Decoder) SetPublicKey(key *rsakey.PreparedKey) error {
	if key == nil {
		return rsakey.ErrInvalidKey
	}
	kv, ok := d.verifiers[RS256].(verifier.KeyedVerifier)
	if !ok {
		return ErrKeyNotSupported
	}
	kv.SetPreparedKey(key)
	return nil
}

// PublicKey returns the key installed on the RS256 verifier. It is nil
// when no key has been set or the verifier does not take keys.
func (d *Decoder) PublicKey() *rsakey.PreparedKey {
	kv, ok := d.verifiers[RS256].(verifier.KeyedVerifier)
	if !ok {
		return nil
	}
	return kv.PublicKey()
}

// Result returns the outcome of the most recently completed verification.
// Failures before dispatch leave it unchanged.
func (d *Decoder) Result() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.result
}

// Header returns the header of the most recently dispatched token.
func (d *Decoder) Header() jsonvalue.Value {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.header
}

// Payload returns the payload of the most recently dispatched token.
func (d *Decoder) Payload() jsonvalue.Value {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.payload
}

// Decode starts decoding token and returns its Request. cb, if non-nil, is
// invoked exactly once on a later tick with the finished request.
func (d *Decoder) Decode(ctx context.Context, token string, cb Callback) *Request {
	if ctx == nil {
		ctx = context.Background()
	}
	req := newRequest(token, cb, d.logger)
	ctx = withRequestID(ctx, req.id)

	segments := strings.Split(token, ".")
	if token == "" || len(segments) != 3 {
		d.fail(ctx, req, ErrMalformedToken)
		return req
	}

	headerB64 := ToBase64(segments[0])
	payloadB64 := ToBase64(segments[1])
	signatureB64 := ToBase64(segments[2])

	header, err := parseSegment(headerB64)
	if err != nil {
		d.fail(ctx, req, fmt.Errorf("%w: %w", ErrInvalidHeader, err))
		return req
	}
	if header.Kind() != jsonvalue.Object {
		d.fail(ctx, req, fmt.Errorf("%w: got %s", ErrHeaderNotObject, header.Kind()))
		return req
	}

	payload, err := parseSegment(payloadB64)
	if err != nil {
		d.fail(ctx, req, fmt.Errorf("%w: %w", ErrInvalidPayload, err))
		return req
	}

	signature, err := decodeBase64(signatureB64)
	if err != nil {
		d.fail(ctx, req, fmt.Errorf("%w: %w", ErrInvalidSignatureEncoding, err))
		return req
	}

	req.setParsed(header, payload, signature)

	if d.claims != nil {
		if err := validateClaims(ctx, d.claims, header, payload); err != nil {
			d.fail(ctx, req, err)
			return req
		}
	}

	d.mu.Lock()
	d.header = header
	d.payload = payload
	d.mu.Unlock()

	v, err := d.selectVerifier()
	if err != nil {
		d.fail(ctx, req, err)
		return req
	}

	signedHeader, signedPayload := headerB64, payloadB64
	if d.signingInput == SigningInputCompact {
		signedHeader, signedPayload = segments[0], segments[1]
	}

	if err := req.machine.Fire(ctx, eventDispatch, nil); err != nil {
		d.logger.ErrorContext(ctx, "dispatch transition failed", logger.Error(err))
	}

	started := d.sched.Now()
	v.Verify(ctx, signedHeader, signedPayload, signature).OnComplete(func(ok bool, verr error) {
		d.metrics.observeVerify(d.sched.Now() - started)

		d.mu.Lock()
		d.result = ok
		d.mu.Unlock()

		switch {
		case verr != nil:
			verr = fmt.Errorf("%w: %w", ErrVerification, verr)
		case !ok:
			verr = ErrSignatureMismatch
		}
		d.complete(ctx, req, eventSettle, verr)
	})

	return req
}

// selectVerifier resolves the configured algorithm against the closed set
// of supported kinds.
func (d *Decoder) selectVerifier() (verifier.Verifier, error) {
	switch d.algorithm {
	case RS256:
		return d.verifiers[RS256], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, d.algorithm)
	}
}

func (d *Decoder) fail(ctx context.Context, req *Request, err error) {
	d.logger.DebugContext(ctx, "token rejected", logger.Error(err))
	d.complete(ctx, req, eventFail, err)
}

// complete moves req to its terminal state and delivers it one tick later.
func (d *Decoder) complete(ctx context.Context, req *Request, event statemachine.Event, err error) {
	var data any
	if err != nil {
		data = err
	}
	if ferr := req.machine.Fire(ctx, event, data); ferr != nil {
		d.logger.ErrorContext(ctx, "terminal transition failed", logger.Error(ferr))
	}

	res := req.finish(err == nil, err)
	d.metrics.observeDecode(err)

	d.sched.After(1, func() {
		req.resolve(res, nil)
		if req.callback != nil {
			req.callback(req)
		}
	})
}

func parseSegment(normalized string) (jsonvalue.Value, error) {
	raw, err := decodeBase64(normalized)
	if err != nil {
		return jsonvalue.Value{}, err
	}
	text, _, err := transform.String(encoding.UTF8Validator, string(raw))
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("invalid utf-8: %w", err)
	}
	return jsonvalue.Parse(text)
}
