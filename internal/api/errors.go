package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes an API call can map to.
// Match with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrRateLimited        = errors.New("rate limited")
	ErrNetwork            = errors.New("network error")
	ErrDecoding           = errors.New("decoding error")
	ErrValidation         = errors.New("validation error")
)

// ServerError is returned for non-2xx responses that do not map to one of
// the sentinels above.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.StatusCode)
}

// ValidationError carries the server-side validation message of a 422
// response. errors.Is(err, ErrValidation) matches it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "validation error"
	}
	return "validation error: " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// statusError maps an HTTP status code and server message to the error
// taxonomy. Only called for non-2xx responses.
func statusError(statusCode int, message string) error {
	switch statusCode {
	case 401:
		return ErrInvalidCredentials
	case 404:
		return ErrNotFound
	case 422:
		return &ValidationError{Message: message}
	case 429:
		return ErrRateLimited
	default:
		return &ServerError{StatusCode: statusCode, Message: message}
	}
}
