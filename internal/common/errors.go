// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values
// and KindOf to classify an error for reporting.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorConflict      = errors.New("conflicts with stored data")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors: malformed input detected before any query is issued
	// or rejected by the database as an invalid value.
	ErrorValidation = errors.New("validation error")

	// Storage could not be reached (connection refused, timeout, broken conn).
	ErrorTransport = errors.New("storage unavailable")
)
