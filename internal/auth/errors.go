package auth

import "errors"

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and expiry.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrScopeMismatch is returned when a token is valid but was issued
	// for a different operation class.
	ErrScopeMismatch = errors.New("invalid scope for token")
	// ErrUnauthorized is what every resolution failure collapses into so
	// callers can't probe which emails are registered.
	ErrUnauthorized = errors.New("could not validate credentials")
)
