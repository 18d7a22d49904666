package verifier

import (
	"log/slog"

	"github.com/dmitrymomot/tickjwt/pkg/rsakey"
)

// Option configures an RS256 verifier.
type Option func(*rs256Options)

type rs256Options struct {
	bitsPerTick int
	logger      *slog.Logger
	key         *rsakey.PreparedKey
}

// WithBitsPerTick sets how many exponent bits are processed per tick.
// Non-positive values are ignored.
func WithBitsPerTick(n int) Option {
	return func(o *rs256Options) {
		if n > 0 {
			o.bitsPerTick = n
		}
	}
}

// WithLogger sets the logger for the verifier.
func WithLogger(l *slog.Logger) Option {
	return func(o *rs256Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPublicKey sets the initial public key.
func WithPublicKey(key *rsakey.PreparedKey) Option {
	return func(o *rs256Options) {
		o.key = key
	}
}
