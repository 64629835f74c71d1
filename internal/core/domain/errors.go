package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidTask      = errors.New("invalid task")
	ErrStoreUnavailable = errors.New("task store unavailable")
)

// ValidationError reports a rejected task field. It matches ErrInvalidTask with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid task %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTask
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
