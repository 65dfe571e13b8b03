package services

import "errors"

var (
	// ErrValidation is returned for malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrAuthenticationFailed is returned for bad login credentials.
	// It is deliberately generic: unknown user and wrong password are
	// indistinguishable to the caller.
	ErrAuthenticationFailed = errors.New("invalid username or password")
)
