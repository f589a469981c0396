package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrAlreadyScored         = errors.New("score already recorded")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
