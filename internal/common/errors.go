// Package common defines shared constants and sentinel errors used across
// keepsake components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Access errors (the shared viewer password was never set).
	ErrorNotConfigured = errors.New("password not configured")

	// Blob storage errors.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageRejected    = errors.New("storage rejected upload")

	// Record persistence errors.
	ErrPersistenceFailed = errors.New("persistence failed")

	// Session token errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
)
