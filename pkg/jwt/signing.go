package jwt

import "fmt"

// SigningInputMode selects which form of the header and payload segments is
// handed to the verifier.
type SigningInputMode uint8

const (
	// SigningInputNormalized passes the padded standard-base64 form of the
	// segments. Tokens whose segments contain '-' or '_' or are not a multiple
	// of four characters long verify only against signatures made over that
	// same normalized text.
	SigningInputNormalized SigningInputMode = iota
	// SigningInputCompact passes the segments exactly as they appear in the
	// token, which is what standard JWS signers sign.
	SigningInputCompact
)

func (m SigningInputMode) String() string {
	switch m {
	case SigningInputNormalized:
		return "normalized"
	case SigningInputCompact:
		return "compact"
	default:
		return fmt.Sprintf("SigningInputMode(%d)", uint8(m))
	}
}

// ParseSigningInputMode maps "normalized" or "compact" to a mode.
func ParseSigningInputMode(name string) (SigningInputMode, error) {
	switch name {
	case "normalized", "":
		return SigningInputNormalized, nil
	case "compact":
		return SigningInputCompact, nil
	default:
		return 0, fmt.Errorf("jwt: unknown signing input mode %q", name)
	}
}
