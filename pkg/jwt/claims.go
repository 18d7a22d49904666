package jwt

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/tickjwt/pkg/jsonvalue"
)

// ClaimValidator inspects a structurally valid header and payload before the
// signature is checked. Returning an error fails the decode with
// ErrClaimsRejected. The decoder ships no rules of its own.
type ClaimValidator interface {
	ValidateClaims(ctx context.Context, header, payload jsonvalue.Value) error
}

// ClaimValidatorFunc adapts a function to ClaimValidator.
type ClaimValidatorFunc func(ctx context.Context, header, payload jsonvalue.Value) error

func (f ClaimValidatorFunc) ValidateClaims(ctx context.Context, header, payload jsonvalue.Value) error {
	return f(ctx, header, payload)
}

func validateClaims(ctx context.Context, v ClaimValidator, header, payload jsonvalue.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: validator panicked: %v", ErrClaimsRejected, r)
		}
	}()

	if err := v.ValidateClaims(ctx, header, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrClaimsRejected, err)
	}
	return nil
}
