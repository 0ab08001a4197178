// Package errors contains helper functions for wrapping errors with stack traces.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New wraps the given error in a type that carries the stack trace of the
// call site. If the error already carries a stack trace, it is reused. If the
// argument is a string, a new error is created from it. A nil error stays nil.
func New(val any) error {
	switch val := val.(type) {
	case nil:
		return nil
	case error:
		var goErr *goerrors.Error
		if errors.As(val, &goErr) {
			return val
		}

		return goerrors.Wrap(val, 1)
	default:
		return goerrors.Wrap(fmt.Errorf("%v", val), 1)
	}
}

// Errorf creates a new formatted error wrapped with the stack trace.
// The %w verb works as in fmt.Errorf.
func Errorf(format string, args ...any) error {
	return goerrors.Wrap(fmt.Errorf(format, args...), 1)
}

// As finds the first error in err's tree that matches target, and if one is
// found, sets target to that error value and returns true.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// ErrorStack returns the error message followed by the recorded callstack,
// or an empty string if the error carries no stack trace.
func ErrorStack(err error) string {
	var goErr *goerrors.Error
	if errors.As(err, &goErr) {
		return goErr.ErrorStack()
	}

	return ""
}
