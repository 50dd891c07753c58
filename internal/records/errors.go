package records

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a record-store failure.
type Kind int

const (
	// KindMalformedInput: a field value is missing or out of range.
	KindMalformedInput Kind = iota + 1
	// KindUniquenessViolation: the email is already used by another record.
	KindUniquenessViolation
	// KindNotFound: no record has the requested id.
	KindNotFound
	// KindStorageCorruption: a persisted line could not be parsed.
	KindStorageCorruption
	// KindStorageIO: the backing file could not be read or written.
	KindStorageIO
)

func (k Kind) String() string {
	switch k {
	case KindMalformedInput:
		return "malformed input"
	case KindUniquenessViolation:
		return "uniqueness violation"
	case KindNotFound:
		return "not found"
	case KindStorageCorruption:
		return "storage corruption"
	case KindStorageIO:
		return "storage i/o failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the error type returned by every operation of this package.
//
// Op names the operation ("insert", "load", ...), Detail is a
// human-readable description, Line is the 1-based line number for
// corruption errors and Err is the underlying cause, if any.
type Error struct {
	Kind   Kind
	Op     string
	Detail string
	Line   int
	Err    error
}

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrMalformedInput = &Error{Kind: KindMalformedInput}
	ErrDuplicateEmail = &Error{Kind: KindUniquenessViolation}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrCorrupted      = &Error{Kind: KindStorageCorruption}
	ErrStorageIO      = &Error{Kind: KindStorageIO}
)

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Kind == KindStorageCorruption && e.Line > 0 {
		fmt.Fprintf(&b, "corrupted data at line %d", e.Line)
	} else {
		b.WriteString(e.Kind.String())
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so that callers can write errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of err, or 0 if err was not produced here.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
