package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Import pipeline failure classes. ErrValidation marks a single bad
	// provider record and never aborts a run; the other two are fatal.
	ErrValidation  = errors.New("record validation failed")
	ErrFetchFailed = errors.New("stats fetch failed")
	ErrStorage     = errors.New("storage failure")
)
