package verifier

import "errors"

var (
	ErrNoPublicKey  = errors.New("verifier: no public key configured")
	ErrNilScheduler = errors.New("verifier: scheduler is required")
)
