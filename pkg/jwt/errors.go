package jwt

import "errors"

var (
	ErrMalformedToken           = errors.New("jwt: token must have three dot-separated segments")
	ErrInvalidEncoding          = errors.New("jwt: invalid base64 encoding")
	ErrInvalidHeader            = errors.New("jwt: invalid header")
	ErrHeaderNotObject          = errors.New("jwt: header is not a JSON object")
	ErrInvalidPayload           = errors.New("jwt: invalid payload")
	ErrInvalidSignatureEncoding = errors.New("jwt: invalid signature encoding")
	ErrClaimsRejected           = errors.New("jwt: claims rejected")
	ErrUnsupportedAlgorithm     = errors.New("jwt: unsupported algorithm")
	ErrSignatureMismatch        = errors.New("jwt: signature verification failed")
	ErrVerification             = errors.New("jwt: verification could not complete")
	ErrNilScheduler             = errors.New("jwt: scheduler is required")
	ErrKeyNotSupported          = errors.New("jwt: verifier does not accept public keys")
)
