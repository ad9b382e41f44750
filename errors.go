// Package quill provides SQL expression compilation for JSON-valued
// columns across multiple database dialects, plus a minimal deferred
// task subsystem. The root package holds the shared error taxonomy.
package quill

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrUnsupported is returned when an operation is not supported
	// by the active database backend.
	ErrUnsupported = errors.New("quill: operation not supported")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("quill: not found")
)

// UnsupportedError is returned when a required backend capability is
// missing. It names the operation and the dialect it was compiled for,
// and is raised before any SQL text is emitted.
type UnsupportedError struct {
	op      string
	dialect string
}

// Error returns the error string.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("quill: %s is not supported on the %s backend", e.op, e.dialect)
}

// Is reports whether the target error matches UnsupportedError.
// This allows errors.Is(err, ErrUnsupported) to return true.
func (e *UnsupportedError) Is(err error) bool {
	return err == ErrUnsupported
}

// Op returns the unsupported operation name.
func (e *UnsupportedError) Op() string {
	return e.op
}

// Dialect returns the dialect the operation was compiled for.
func (e *UnsupportedError) Dialect() string {
	return e.dialect
}

// NewUnsupportedError returns a new UnsupportedError for the given
// operation and dialect.
func NewUnsupportedError(op, dialect string) *UnsupportedError {
	return &UnsupportedError{op: op, dialect: dialect}
}

// IsUnsupported returns true if the error is an UnsupportedError.
func IsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupported)
}

// NotFoundError represents an error when a record is not found.
type NotFoundError struct {
	label string
	id    any // Optional: the ID that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("quill: %s not found (id=%v)", e.label, e.id)
	}
	return fmt.Sprintf("quill: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(err, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the record label.
func (e *NotFoundError) Label() string {
	return e.label
}

// ID returns the ID that was searched for, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given label.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the ID that
// was searched for.
func NewNotFoundErrorWithID(label string, id any) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}
