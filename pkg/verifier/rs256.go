package verifier

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/tickjwt/pkg/async"
	"github.com/dmitrymomot/tickjwt/pkg/logger"
	"github.com/dmitrymomot/tickjwt/pkg/rsakey"
	"github.com/dmitrymomot/tickjwt/pkg/scheduler"
)

// AlgorithmRS256 is the JWS "alg" value handled by RS256.
const AlgorithmRS256 = "RS256"

// DefaultBitsPerTick is the number of exponent bits processed per tick.
const DefaultBitsPerTick = 4

// RS256 verifies RSASSA-PKCS1-v1_5 SHA-256 signatures. The modular
// exponentiation is spread across scheduler ticks.
type RS256 struct {
	sched       *scheduler.Scheduler
	key         atomic.Pointer[rsakey.PreparedKey]
	bitsPerTick int
	logger      *slog.Logger

	mu     sync.Mutex
	result bool
}

var _ KeyedVerifier = (*RS256)(nil)

// NewRS256 creates an RS256 verifier that runs on sched.
func NewRS256(sched *scheduler.Scheduler, opts ...Option) (*RS256, error) {
	if sched == nil {
		return nil, ErrNilScheduler
	}

	options := &rs256Options{
		bitsPerTick: DefaultBitsPerTick,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	v := &RS256{
		sched:       sched,
		bitsPerTick: options.bitsPerTick,
		logger:      options.logger.With(logger.Component("verifier"), logger.Algorithm(AlgorithmRS256)),
	}
	if options.key != nil {
		v.key.Store(options.key)
	}
	return v, nil
}

// Algorithm implements Verifier.
func (v *RS256) Algorithm() string { return AlgorithmRS256 }

// SetPublicKey replaces the key with raw Montgomery material. The last
// successful call wins; on error the previous key stays in place.
// Verifications already in flight keep the key they started with.
func (v *RS256) SetPublicKey(e int, n, nInverse []uint32, fixedPointLength int) error {
	key, err := rsakey.FromMontgomery(e, n, nInverse, fixedPointLength)
	if err != nil {
		return err
	}
	v.key.Store(key)
	return nil
}

// SetPreparedKey implements KeyedVerifier.
func (v *RS256) SetPreparedKey(key *rsakey.PreparedKey) {
	v.key.Store(key)
}

// PublicKey implements KeyedVerifier. It returns nil until a key is set.
func (v *RS256) PublicKey() *rsakey.PreparedKey {
	return v.key.Load()
}

// Result returns the outcome of the most recently completed verification.
// It is only meaningful after a Verify future has resolved.
func (v *RS256) Result() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result
}

// Verify implements Verifier. Completion never happens in the calling tick.
func (v *RS256) Verify(ctx context.Context, headerSegment, payloadSegment string, signature []byte) *async.Future[bool] {
	future, resolve := async.NewPromise[bool]()
	start := v.sched.Now()

	complete := func(ok bool, err error) {
		v.mu.Lock()
		v.result = ok
		v.mu.Unlock()

		v.logger.DebugContext(ctx, "verification completed",
			logger.Outcome(ok),
			logger.Ticks(v.sched.Now()-start),
			logger.Error(err))
		resolve(ok, err)
	}
	fail := func(err error) {
		v.sched.After(1, func() { complete(false, err) })
	}

	key := v.key.Load()
	if key == nil {
		fail(ErrNoPublicKey)
		return future
	}

	if len(signature) != key.Size() {
		v.logger.DebugContext(ctx, "signature length does not match modulus",
			slog.Int("signature_len", len(signature)),
			slog.Int("modulus_len", key.Size()))
		fail(nil)
		return future
	}

	s := new(big.Int).SetBytes(signature)
	if s.Cmp(key.Modulus()) >= 0 {
		fail(nil)
		return future
	}

	expected, err := encodePKCS1v15SHA256(sha256.Sum256(SigningInput(headerSegment, payloadSegment)), key.Size())
	if err != nil {
		fail(err)
		return future
	}

	exp := newModExp(newMontgomery(key), s, key.E())
	size := key.Size()

	var step scheduler.Task
	step = func() {
		if !exp.step(v.bitsPerTick) {
			v.sched.After(1, step)
			return
		}
		em := exp.result().FillBytes(make([]byte, size))
		complete(subtle.ConstantTimeCompare(em, expected) == 1, nil)
	}
	v.sched.After(1, step)

	return future
}
