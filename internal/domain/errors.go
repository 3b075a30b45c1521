package domain

import "errors"

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// ConflictError reports which uniqueness rule a write violated.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
