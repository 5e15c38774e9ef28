package pkg

import (
	"errors"
	"log/slog"
	"strings"
)

// Error is a structured error with optional slog attributes.
//
// Sentinel values are declared with [NewError] or [NewDefect] and refined at
// the failure site with [Error.With] and [Error.Wrap]. A refined error still
// matches its sentinel with [errors.Is].
type Error struct {
	kind   *Error
	err    error
	msg    string
	attrs  []slog.Attr
	defect bool
}

// NewError creates a sentinel for errors caused by user input.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// NewDefect creates a sentinel for internal consistency errors. These indicate
// a bug rather than bad input. See [IsDefect].
func NewDefect(msg string) *Error {
	e := NewError(msg)
	e.defect = true

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	return e.kind == t.kind
}

// Defect reports whether e was derived from a sentinel made by [NewDefect].
func (e *Error) Defect() bool { return e.defect }

// Attrs returns a copy of the attributes attached to e.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// Attr returns the value of the first attribute named key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e with err as its cause.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	c.attrs = append(append(c.attrs, e.attrs...), attrs...)

	return &c
}

// IsDefect reports whether any error in err's chain is a defect.
func IsDefect(err error) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}

		if e.defect {
			return true
		}

		err = e.err
	}

	return false
}

// AttrOf returns the value of the first attribute named key found on any
// [Error] in err's chain, outermost first.
func AttrOf(err error, key string) (slog.Value, bool) {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}

		if v, ok := e.Attr(key); ok {
			return v, true
		}

		err = e.err
	}

	return slog.Value{}, false
}
