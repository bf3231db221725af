// Package errors augments the standard errors
// with a Wrap() method to attach a cause to a sentinel error
// without resorting to fmt.Errorf("%w", err).
//
// Sentinels declared with New are never mutated: Wrap and Wrapf
// return a new value which still matches the sentinel with Is.
package errors

import (
	stderr "errors"
	"fmt"

	"go.uber.org/multierr"
)

var _ error = New("")

// New Error
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error augments the standard error interface with a Wrap method.
//
// The main difference with github.com/pkg/errors is that we are wrapping
// errors from errors, not from text.
type Error struct {
	msg    string
	err    error
	parent *Error // sentinel this error was wrapped from
	class  *Error // broader sentinel this one belongs to
}

// Sub declares a new sentinel which also matches e with Is
func (e *Error) Sub(msg string) *Error {
	return &Error{msg: msg, class: e.root()}
}

// Error message
func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a nested error
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, parent: e.root()}
}

// Wrapf wraps a formatted message as the nested error
func (e *Error) Wrapf(format string, args ...interface{}) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Is of some error type?
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e == t {
		return true
	}
	want := t.root()
	for r := e.root(); r != nil; r = r.class {
		if r == want {
			return true
		}
	}
	return false
}

func (e *Error) root() *Error {
	if e.parent != nil {
		return e.parent
	}
	return e
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
// (a shortcut to standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to standard lib errors.Is)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}

// Unwrap returns the cause of err, if any
// (a shortcut to standard lib errors.Unwrap)
func Unwrap(err error) error {
	return stderr.Unwrap(err)
}

// Append combines errors, skipping nil ones
func Append(left, right error) error {
	return multierr.Append(left, right)
}

// Errors flattens a combined error into its components
func Errors(err error) []error {
	return multierr.Errors(err)
}
