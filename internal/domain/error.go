package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound         = errors.New("entity not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrNotConfirmed     = errors.New("destructive action not confirmed")
	ErrCoachUnavailable = errors.New("coach backend unavailable")
)
