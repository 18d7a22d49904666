package jwt

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for tickjwt_decode_total.
const (
	OutcomeVerified    = "verified"
	OutcomeMismatch    = "signature_mismatch"
	OutcomeMalformed   = "malformed"
	OutcomeClaims      = "claims_rejected"
	OutcomeUnsupported = "unsupported_algorithm"
	OutcomeError       = "error"
)

type metrics struct {
	decodes     *prometheus.CounterVec
	verifyTicks prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tickjwt",
			Name:      "decode_total",
			Help:      "Completed token decodes by outcome.",
		}, []string{"outcome"}),
		verifyTicks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tickjwt",
			Name:      "verify_ticks",
			Help:      "Scheduler ticks between dispatch to the verifier and its completion.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.decodes, m.verifyTicks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) observeDecode(err error) {
	if m == nil {
		return
	}
	m.decodes.WithLabelValues(outcomeLabel(err)).Inc()
}

func (m *metrics) observeVerify(ticks uint64) {
	if m == nil {
		return
	}
	m.verifyTicks.Observe(float64(ticks))
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return OutcomeVerified
	case errors.Is(err, ErrSignatureMismatch):
		return OutcomeMismatch
	case errors.Is(err, ErrMalformedToken),
		errors.Is(err, ErrInvalidHeader),
		errors.Is(err, ErrHeaderNotObject),
		errors.Is(err, ErrInvalidPayload),
		errors.Is(err, ErrInvalidSignatureEncoding):
		return OutcomeMalformed
	case errors.Is(err, ErrClaimsRejected):
		return OutcomeClaims
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return OutcomeUnsupported
	default:
		return OutcomeError
	}
}
