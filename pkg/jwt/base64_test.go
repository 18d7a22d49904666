package jwt_test

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tickjwt/pkg/jwt"
)

func TestToBase64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no padding needed", "YWJj", "YWJj"},
		{"two padding chars", "YQ", "YQ=="},
		{"one padding char", "YWI", "YWI="},
		{"three padding chars", "YWJjZ", "YWJjZ==="},
		{"url alphabet", "-_-_", "+/+/"},
		{"invalid chars are kept", "a!b", "a!b="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, jwt.ToBase64(tt.in))
		})
	}
}

func TestToBase64_LengthIsMultipleOfFour(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "a", "ab", "abc", "abcd", "abcde", "abcdef", "abcdefg", "a-b_c"} {
		assert.Zero(t, len(jwt.ToBase64(in))%4, "input %q", in)
	}
}

func TestDecodeSegment_RoundTrip(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 64; n++ {
		raw := make([]byte, n)
		_, err := rand.Read(raw)
		require.NoError(t, err)

		segment := base64.RawURLEncoding.EncodeToString(raw)
		require.NotEqual(t, 1, len(segment)%4)

		got, err := jwt.DecodeSegment(segment)
		require.NoError(t, err, "length %d", n)
		assert.Equal(t, raw, got)

		std, err := base64.StdEncoding.DecodeString(jwt.ToBase64(segment))
		require.NoError(t, err)
		assert.Equal(t, raw, std)
	}
}

func TestDecodeSegment_LengthOneModFourFails(t *testing.T) {
	t.Parallel()

	for _, segment := range []string{"a", "abcde", "YWJjZGVmZ"} {
		require.Equal(t, 1, len(segment)%4)

		_, err := jwt.DecodeSegment(segment)
		require.Error(t, err, "segment %q", segment)
		assert.ErrorIs(t, err, jwt.ErrInvalidEncoding)
	}
}

func TestDecodeSegment_InvalidCharacters(t *testing.T) {
	t.Parallel()

	_, err := jwt.DecodeSegment("ab!d")
	assert.ErrorIs(t, err, jwt.ErrInvalidEncoding)
}
