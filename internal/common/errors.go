// Package common defines shared constants and sentinel errors used across
// the monicli client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors surfaced as displayable messages.
	ErrorValidation = errors.New("validation error")

	// Token lifecycle errors.
	ErrTokenExpired  = errors.New("token expired")
	ErrNoCredentials = errors.New("no stored credentials")
)
