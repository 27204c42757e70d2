package session

import "errors"

// Failure taxonomy for the session lifecycle. The handler maps each one
// to an HTTP status exactly once; nothing else inspects them.
var (
	// ErrInvalidCredentials covers wrong email/password pairs, unknown
	// users, and well-signed refresh tokens that no longer match the
	// stored session hash. The cases are deliberately indistinguishable
	// so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers malformed, forged, and expired tokens.
	ErrInvalidToken = errors.New("invalid token")

	ErrEmailConflict = errors.New("email already registered")

	ErrSamePassword = errors.New("new password must differ from the current one")

	// ErrDirectoryUnavailable wraps storage failures unrelated to the
	// credentials themselves. Never retried here; retries belong to the
	// caller.
	ErrDirectoryUnavailable = errors.New("user directory unavailable")
)
