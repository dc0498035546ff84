package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNotFound         = errors.New("key not found")
	ErrReadOnly         = errors.New("store is in read-only mode")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidViewMode  = errors.New("invalid view mode")
)

// Persistence operations reported by PersistenceError.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// PersistenceError reports a failure to read or write a persisted document.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsReadError reports whether err is a failed read of a stored document.
func IsReadError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.Op == OpRead
}

// IsWriteError reports whether err is a failed write of a document.
func IsWriteError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.Op == OpWrite
}

// ValidationError is returned by the caller-side validation helpers.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
