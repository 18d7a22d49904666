package verifier

import (
	"context"

	"github.com/dmitrymomot/tickjwt/pkg/async"
	"github.com/dmitrymomot/tickjwt/pkg/rsakey"
)

// Verifier checks a JWS signature over headerSegment + "." + payloadSegment.
// The returned Future resolves exactly once, on a later scheduler tick, with
// the verification outcome. A non-nil error means verification could not be
// attempted; a false result with a nil error means the signature is wrong.
type Verifier interface {
	Algorithm() string
	Verify(ctx context.Context, headerSegment, payloadSegment string, signature []byte) *async.Future[bool]
}

// KeyedVerifier is a Verifier whose public key can be replaced at runtime.
type KeyedVerifier interface {
	Verifier
	SetPreparedKey(key *rsakey.PreparedKey)
	PublicKey() *rsakey.PreparedKey
}

// SigningInput returns the ASCII bytes a JWS signature is computed over.
func SigningInput(headerSegment, payloadSegment string) []byte {
	b := make([]byte, 0, len(headerSegment)+1+len(payloadSegment))
	b = append(b, headerSegment...)
	b = append(b, '.')
	b = append(b, payloadSegment...)
	return b
}
