package engine

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no task exists with the requested id.
var ErrNotFound = errors.New("task not found")

// ValidationError reports rejected input: a blank title, an unknown enum
// value, or a malformed date.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps a failure from the task store. The underlying error is
// preserved for errors.Is/As.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }
