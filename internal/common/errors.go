// Package common defines shared constants and sentinel errors used across
// the server layers of Blogify. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthenticated")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors. Concrete failures wrap ErrorValidation.
	ErrorValidation = errors.New("validation error")

	// Credential errors. Both collapse into one message at the HTTP boundary.
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid, expired or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
