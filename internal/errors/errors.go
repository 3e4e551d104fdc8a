// Package errors contains helper functions for wrapping errors with stack traces, stack output, and panic recovery.
package errors

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New wraps the given value in an error type that contains the stack trace. If the given value
// is an error that already has a stack trace, it is returned as is. If the given value is nil, returns nil.
func New(val any) error {
	if val == nil {
		return nil
	}

	if err, ok := val.(error); ok {
		if ContainsStackTrace(err) {
			return err
		}

		return goerrors.Wrap(err, 1)
	}

	return goerrors.Wrap(fmt.Errorf("%v", val), 1)
}

// Errorf creates a new error and wraps it in an error type that contains the stack trace,
// unless one of the formatted values already carries a stack trace.
func Errorf(format string, vals ...any) error {
	err := fmt.Errorf(format, vals...)
	if ContainsStackTrace(err) {
		return err
	}

	return goerrors.Wrap(err, 1)
}

// ErrorWithExitCode is a custom error that is used to specify the app exit code.
type ErrorWithExitCode struct {
	Err      error
	ExitCode int
}

func (err ErrorWithExitCode) Error() string {
	return err.Err.Error()
}

func (err ErrorWithExitCode) Unwrap() error {
	return err.Err
}
