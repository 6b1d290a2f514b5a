package aig

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an Error so callers can switch on failure category
// instead of parsing messages.
type Kind int

const (
	// KindInvalidArgument means a caller passed a nil or contradictory
	// argument.
	KindInvalidArgument Kind = iota
	// KindOutOfMemory means an allocation failed.
	KindOutOfMemory
	// KindIllegalSequence means the input was malformed: an unexpected
	// character, a missing newline in strict mode, or a bad literal
	// encoding.
	KindIllegalSequence
	// KindOutOfRange means an index fell outside its section's bounds,
	// a literal exceeded 2M+1, or a strict-mode cross-check failed.
	KindOutOfRange
	// KindOverflow means a decimal number exceeded 2^64-1.
	KindOverflow
	// KindUnsupported means binary AND-gate decoding or an AIGER 1.9
	// extension was requested.
	KindUnsupported
	// KindAlreadyExists means a duplicate symbol was found in strict
	// mode.
	KindAlreadyExists
	// KindNotFound means LookupByName found no matching symbol.
	KindNotFound
	// KindIO means the underlying stream returned an error.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid-argument"
	case KindOutOfMemory:
		return "out-of-memory"
	case KindIllegalSequence:
		return "illegal-sequence"
	case KindOutOfRange:
		return "out-of-range"
	case KindOverflow:
		return "overflow"
	case KindUnsupported:
		return "unsupported"
	case KindAlreadyExists:
		return "already-exists"
	case KindNotFound:
		return "not-found"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every operation in this package.
// It is never repaired or retried automatically; the Kind tells a
// caller what category of failure occurred, and Unwrap exposes the
// underlying cause (if any) for errors.Is/errors.As.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap exposes the wrapped cause, if any, so errors.Is/errors.As work
// against Error.
func (e *Error) Unwrap() error {
	return e.err
}

// newErr constructs an Error of the given kind with a formatted message
// and no wrapped cause.
func newErr(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// wrapErr constructs an Error of the given kind, wrapping cause with
// pkg/errors so a stack trace is retained alongside our kind tag.
func wrapErr(kind Kind, cause error, format string, args ...interface{}) error {
	return &Error{
		Kind: kind,
		msg:  fmt.Sprintf(format, args...),
		err:  errors.Wrapf(cause, "%s", kind),
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
