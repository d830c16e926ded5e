// Package errors provides error helpers used across the project:
// formatted constructors, error prefixing and a multi-error container
// that renders nested errors as a bullet list.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

func New(text string) error {
	return errors.New(text)
}

func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// PrefixError adds a prefix to the error message, the original error is wrapped.
func PrefixError(err error, prefix string) error {
	return &prefixedError{prefix: prefix, err: err}
}

func PrefixErrorf(err error, format string, a ...any) error {
	return PrefixError(err, fmt.Sprintf(format, a...))
}

type prefixedError struct {
	prefix string
	err    error
}

func (e *prefixedError) Error() string {
	msg := e.err.Error()
	if strings.ContainsRune(msg, '\n') {
		return e.prefix + ":\n" + indent(msg)
	}
	return e.prefix + ": " + msg
}

func (e *prefixedError) Unwrap() error {
	return e.err
}

// MultiError is a container for zero or more errors.
// The zero-length container renders as an empty string and ErrorOrNil returns nil,
// so it can be accumulated unconditionally and checked once at the end.
type MultiError struct {
	errs []error
}

func NewMultiError() *MultiError {
	return &MultiError{}
}

func (e *MultiError) Append(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		if v, ok := err.(*MultiError); ok {
			e.errs = append(e.errs, v.errs...)
		} else {
			e.errs = append(e.errs, err)
		}
	}
}

func (e *MultiError) AppendWithPrefix(err error, prefix string) {
	if err != nil {
		e.errs = append(e.errs, PrefixError(err, prefix))
	}
}

func (e *MultiError) AppendWithPrefixf(err error, format string, a ...any) {
	e.AppendWithPrefix(err, fmt.Sprintf(format, a...))
}

func (e *MultiError) Len() int {
	return len(e.errs)
}

func (e *MultiError) WrappedErrors() []error {
	return e.errs
}

func (e *MultiError) ErrorOrNil() error {
	if len(e.errs) == 0 {
		return nil
	}
	return e
}

func (e *MultiError) Unwrap() []error {
	return e.errs
}

func (e *MultiError) Error() string {
	switch len(e.errs) {
	case 0:
		return ""
	case 1:
		return e.errs[0].Error()
	default:
		var out strings.Builder
		for i, err := range e.errs {
			if i > 0 {
				out.WriteString("\n")
			}
			out.WriteString("- ")
			out.WriteString(indentNext(err.Error()))
		}
		return out.String()
	}
}

func indent(msg string) string {
	lines := strings.Split(msg, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

// indentNext indents all lines except the first, to align multi-line messages under a bullet.
func indentNext(msg string) string {
	lines := strings.Split(msg, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = "  " + lines[i]
	}
	return strings.Join(lines, "\n")
}
