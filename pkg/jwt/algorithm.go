package jwt

import (
	"fmt"
	"strings"
)

// AlgorithmKind selects the signature verifier. The set is closed: only
// RS256 is supported, and any other value fails decoding with
// ErrUnsupportedAlgorithm.
type AlgorithmKind uint8

const (
	RS256 AlgorithmKind = iota
)

func (k AlgorithmKind) String() string {
	switch k {
	case RS256:
		return "RS256"
	default:
		return fmt.Sprintf("unsupported(%d)", uint8(k))
	}
}

// Supported reports whether k has a verifier.
func (k AlgorithmKind) Supported() bool {
	return k == RS256
}

// ParseAlgorithm maps a JWS "alg" name to an AlgorithmKind.
func ParseAlgorithm(name string) (AlgorithmKind, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "RS256":
		return RS256, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
}
