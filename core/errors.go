// Package core holds the error taxonomy shared by every qsdata package.
//
// Errors are classified by kind rather than by concrete type. Callers should
// test them with errors.Is against the sentinels below:
//
//	if errors.Is(err, core.ErrMissingKey) { ... }
//
// ErrNonUniformType wraps ErrInvalidArgument, so a key sort rejecting mixed
// value types also satisfies errors.Is(err, core.ErrInvalidArgument).
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when an input has the wrong shape: not a
	// list of records, an unsupported value type, a digit inside a string
	// that is about to be run-length compressed, and so on.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingKey is returned when a record lacks a key that the operation
	// requires.
	ErrMissingKey = errors.New("missing key")

	// ErrNonUniformType is returned by key sorting when the values stored
	// under the sort key are not all of the same kind.
	ErrNonUniformType = fmt.Errorf("%w: non-uniform types", ErrInvalidArgument)
)

// MissingKeyError reports the record that lacked a required key.
//
// The error unwraps to ErrMissingKey.
type MissingKeyError struct {
	Key   string
	Index int
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("key %q not found in record %d", e.Key, e.Index)
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingKey }

// InvalidArgument formats a message and wraps it with ErrInvalidArgument.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NonUniformType formats a message and wraps it with ErrNonUniformType.
func NonUniformType(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNonUniformType, fmt.Sprintf(format, args...))
}
