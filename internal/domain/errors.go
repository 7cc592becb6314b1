package domain

import "errors"

// Repository-level sentinel errors. Repositories wrap them with %w; usecases
// translate them into apperror values.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileExists       = errors.New("profile already exists for employee")
	ErrSectionItemNotFound = errors.New("section item not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrAlreadyApplied      = errors.New("employee already applied to job")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrUnknownSection      = errors.New("unknown profile section")
)
