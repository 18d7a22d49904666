package jwt

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/tickjwt/pkg/verifier"
)

// Option configures a Decoder.
type Option func(*decoderOptions)

type decoderOptions struct {
	algorithm    AlgorithmKind
	verifiers    map[AlgorithmKind]verifier.Verifier
	claims       ClaimValidator
	logger       *slog.Logger
	registerer   prometheus.Registerer
	signingInput SigningInputMode
	verifierOpts []verifier.Option
}

// WithAlgorithm sets the algorithm used for every token. Defaults to RS256.
func WithAlgorithm(kind AlgorithmKind) Option {
	return func(o *decoderOptions) {
		o.algorithm = kind
	}
}

// WithVerifier installs the verifier for kind, replacing the default one.
// Registering a verifier does not make an unsupported kind selectable.
func WithVerifier(kind AlgorithmKind, v verifier.Verifier) Option {
	return func(o *decoderOptions) {
		if v != nil {
			o.verifiers[kind] = v
		}
	}
}

// WithVerifierOptions passes options to the default RS256 verifier.
func WithVerifierOptions(opts ...verifier.Option) Option {
	return func(o *decoderOptions) {
		o.verifierOpts = append(o.verifierOpts, opts...)
	}
}

// WithClaimValidator runs v on every structurally valid token before its
// signature is checked.
func WithClaimValidator(v ClaimValidator) Option {
	return func(o *decoderOptions) {
		o.claims = v
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *decoderOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics registers decode counters and verification tick histograms
// with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *decoderOptions) {
		o.registerer = reg
	}
}

// WithSigningInput selects the signing input form. Defaults to
// SigningInputNormalized.
func WithSigningInput(mode SigningInputMode) Option {
	return func(o *decoderOptions) {
		o.signingInput = mode
	}
}
