// Package errors wraps github.com/pkg/errors so the rest of the codebase gets
// stack traces on wrapped errors while keeping the standard library's Is/As
// matching semantics.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// ErrFileNotExists signals that a file we were asked to read is absent. Callers
// that treat a missing file as a soft condition match on it with Is.
var ErrFileNotExists = New("file does not exist")

func New(message string) error {
	return pkgerrors.New(message)
}

func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}
