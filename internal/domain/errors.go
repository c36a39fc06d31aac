package domain

import "errors"

var (
	// ErrNotFound indicates that no profile, plan or user exists for the request.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence indicates that a read or write against storage failed.
	// Callers may retry and must reload authoritative state.
	ErrPersistence = errors.New("storage unavailable")
	// ErrConflict indicates a uniqueness violation, e.g. a duplicate email.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)
