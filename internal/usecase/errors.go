package usecase

import "errors"

// Sentinel errors returned by the services, always wrapped with detail.
// The HTTP layer maps each one to a status code.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrConflict covers duplicate club names and renames of clubs that
	// already appear in results.
	ErrConflict              = errors.New("conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
