// Package vmerr holds the typed, recoverable error kinds the dispatch
// loop can surface, per the error-kind taxonomy of the execution core.
package vmerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the recoverable error categories the interpreter can
// raise. Comparison and map opcodes never raise one of these. Arithmetic
// opcodes never do either, except that integer modulo by zero raises
// Invariant.
type Kind string

const (
	// TypeMisuse is a format-time type error (e.g. a non-scalar printf arg).
	TypeMisuse Kind = "type_misuse"
	// RegexCompile is a pattern compile failure in the regex cache.
	RegexCompile Kind = "regex_compile"
	// IOOpen is an open failure for a named reader or writer.
	IOOpen Kind = "io_open"
	// Invariant is a debug-build bounds/invariant violation.
	Invariant Kind = "invariant"
	// FormatTime is a malformed strftime layout.
	FormatTime Kind = "format_time"
)

// Error wraps a Kind with a message and an optional underlying cause. Use
// errors.Cause (github.com/pkg/errors) to unwrap to the original error
// when one is present.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a bare Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches cause to a new Error, adding a stack trace via
// github.com/pkg/errors so the top-level diagnostic can print one.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: errors.WithStack(cause)}
}

// Is reports whether err is a vmerr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
