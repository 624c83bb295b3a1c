// Package errs fronts cockroachdb/errors so call sites get stack traces and
// sentinel marking without importing it directly.
package errs

import (
	"fmt"

	cr "github.com/cockroachdb/errors"
)

// Wrap annotates err with msg. Returns nil for a nil err so call sites can
// wrap unconditionally.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark ties err to a sentinel. The sentinel sits in the unwrap chain, so
// plain errors.Is matches both it and the underlying cause, while Error()
// keeps the cause's message alone.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &marked{cause: err, mark: markErr}
}

type marked struct {
	cause error
	mark  error
}

func (m *marked) Error() string { return m.cause.Error() }

func (m *marked) Unwrap() []error { return []error{m.cause, m.mark} }

// Format keeps the cause's stack trace visible under %+v.
func (m *marked) Format(s fmt.State, verb rune) {
	if f, ok := m.cause.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), m.cause)
}
