// Package common contains shared constants and sentinel errors used across
// PeerPoint components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Credential store errors.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Session errors.
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrOperationInFlight = errors.New("operation already in flight")

	// Validation errors (stay in the form/input layer).
	ErrValidation = errors.New("validation error")
)
