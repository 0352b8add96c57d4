package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrStaleCompletion   = errors.New("stale completion")
	ErrSessionNotStarted = errors.New("session not started")
	ErrNotConfigured     = errors.New("collaborator not configured")
)
