package nomxml

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a fatal parse condition.
//
// ErrorKind implements error so a kind can be used directly as an
// errors.Is target:
//
//	if errors.Is(err, nomxml.PrematureEOF) { ... }
type ErrorKind uint8

// Error kinds.
const (
	// IOFailure means the input could not be opened, positioned or read.
	IOFailure ErrorKind = iota + 1

	// PrematureEOF means input ended while elements were still open or while
	// a required delimiter was expected.
	PrematureEOF

	// StructuralMismatch means an end tag did not match the innermost open
	// element, or appeared with no element open.
	StructuralMismatch

	// MalformedTag means a tag could not be decoded: an unknown "<!" form, a
	// missing '>' or a processing instruction without its closing '?'.
	MalformedTag

	// UnexpectedContent means non-whitespace text appeared outside all elements.
	UnexpectedContent
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case IOFailure:
		return "io-failure"
	case PrematureEOF:
		return "premature-eof"
	case StructuralMismatch:
		return "structural-mismatch"
	case MalformedTag:
		return "malformed-tag"
	case UnexpectedContent:
		return "unexpected-content"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error implements error.
func (k ErrorKind) Error() string {
	return k.String()
}

// Error is the terminal error of a parse session.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Offset is the number of characters consumed when the failure was detected.
	Offset int

	// Msg is the human-readable description returned by Parser.ErrorText.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at offset %d: %s: %v", e.Kind, e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the ErrorKind of e.
func (e *Error) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// KindOf returns the ErrorKind carried by err, or zero when err is not a
// parse error.
func KindOf(err error) ErrorKind {
	var parseErr *Error
	if errors.As(err, &parseErr) {
		return parseErr.Kind
	}
	return 0
}
