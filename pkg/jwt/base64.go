package jwt

import (
	"encoding/base64"
	"fmt"
	"strings"
)

var urlToStd = strings.NewReplacer("-", "+", "_", "/")

// ToBase64 converts unpadded base64url text to padded standard base64.
// The character set is not validated here; invalid input surfaces later as a
// decode error. A length of 1 mod 4 gets three padding characters and can
// never decode, since no base64 text needs more than two.
func ToBase64(base64URL string) string {
	s := urlToStd.Replace(base64URL)
	switch len(s) % 4 {
	case 1:
		s += "==="
	case 2:
		s += "=="
	case 3:
		s += "="
	}
	return s
}

// DecodeSegment decodes one base64url token segment to bytes.
func DecodeSegment(segment string) ([]byte, error) {
	return decodeBase64(ToBase64(segment))
}

func decodeBase64(normalized string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return b, nil
}
