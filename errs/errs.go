// Package errs defines the flat error kinds surfaced by managers and storage
// engines. Errors carry a human-readable message naming the offending field
// or id; there are no codes and no wrapping between kinds.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// KindNotFound: get/update/delete against an absent id.
	KindNotFound Kind = iota

	// KindValidation: a record violated its schema.
	KindValidation

	// KindStorage: engine-specific failure (I/O, serialization). Unused by
	// the in-memory engine, available to other engines.
	KindStorage

	// KindInvalidOperation: e.g. create against an existing id.
	KindInvalidOperation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "Not found"
	case KindValidation:
		return "Validation error"
	case KindStorage:
		return "Storage error"
	case KindInvalidOperation:
		return "Invalid operation"
	default:
		return "Unknown error"
	}
}

// Error is the single error type crossing the manager and engine boundaries.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NotFoundf creates a not-found error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validationf creates a validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Storagef creates a storage error.
func Storagef(format string, args ...any) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf(format, args...)}
}

// InvalidOperationf creates an invalid-operation error.
func InvalidOperationf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindValidation
}

// IsStorage reports whether err is a storage error.
func IsStorage(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindStorage
}

// IsInvalidOperation reports whether err is an invalid-operation error.
func IsInvalidOperation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindInvalidOperation
}
