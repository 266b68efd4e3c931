package domain

import "errors"

// Storage-level outcomes reported by repositories.
var (
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicate is returned when an insert violates a unique (user, job) pair.
	ErrDuplicate = errors.New("duplicate record")

	// ErrReferenceMissing is returned when an insert references a row that
	// no longer exists, e.g. a job deleted while an application was in flight.
	ErrReferenceMissing = errors.New("referenced record does not exist")
)
