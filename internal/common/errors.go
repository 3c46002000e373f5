// Package common defines shared constants and sentinel errors used across
// the layers of tourneyadmin. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal           = errors.New("internal error")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Setup/bootstrap errors.
	ErrAlreadyInitialized = errors.New("setup already completed")

	// Validation errors; wrap with field detail, e.g.
	// fmt.Errorf("%w: username is required", common.ErrValidation).
	ErrValidation = errors.New("validation error")

	// Token errors (invalid or malformed vs. naturally expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
