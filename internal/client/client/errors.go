package client

import "errors"

var (
	// ErrUnavailable covers transport failures and malformed responses:
	// anything that makes the collaborator's answer unusable.
	ErrUnavailable = errors.New("server unavailable")

	// ErrInvalidCredentials means the collaborator understood the request
	// and rejected the credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized means the presented token was missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")
)
