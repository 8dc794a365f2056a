package http

import "errors"

// Authorization errors returned by the auth middleware.
var (
	// ErrEmptyAuthorizationHeader is returned when the Authorization
	// header is absent from a guarded request.
	ErrEmptyAuthorizationHeader = errors.New("empty authorization header")

	// ErrInvalidToken is returned when a session token fails validation
	// (bad signature, wrong issuer, or expiry).
	ErrInvalidToken = errors.New("invalid session token")
)
