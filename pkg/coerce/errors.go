package coerce

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a coercion failure.
type ErrorKind int

const (
	MalformedSyntax ErrorKind = iota + 1 // token matches no recognized grammar
	OutOfRange                           // a number violates a stated bound
	ArityMismatch                        // wrong component/argument count
	UnknownName                          // color name not in the table
	UnknownFunction                      // transform function not recognized
	IOFailure                            // referenced file unreadable
)

var kindNames = map[ErrorKind]string{
	MalformedSyntax: "malformed syntax",
	OutOfRange:      "out of range",
	ArityMismatch:   "arity mismatch",
	UnknownName:     "unknown name",
	UnknownFunction: "unknown function",
	IOFailure:       "io failure",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is matching on the failure kind.
var (
	ErrMalformedSyntax = errors.New(MalformedSyntax.String())
	ErrOutOfRange      = errors.New(OutOfRange.String())
	ErrArityMismatch   = errors.New(ArityMismatch.String())
	ErrUnknownName     = errors.New(UnknownName.String())
	ErrUnknownFunction = errors.New(UnknownFunction.String())
	ErrIOFailure       = errors.New(IOFailure.String())
)

func (k ErrorKind) sentinel() error {
	switch k {
	case MalformedSyntax:
		return ErrMalformedSyntax
	case OutOfRange:
		return ErrOutOfRange
	case ArityMismatch:
		return ErrArityMismatch
	case UnknownName:
		return ErrUnknownName
	case UnknownFunction:
		return ErrUnknownFunction
	case IOFailure:
		return ErrIOFailure
	}
	return nil
}

// Error is the failure returned by every parser in this package. Token is the
// offending token or sub-token, Detail a short human explanation, and Err an
// optional underlying cause (strconv or file errors).
type Error struct {
	Kind   ErrorKind
	Token  string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %q", e.Kind, e.Token)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func newError(kind ErrorKind, token, format string, args ...any) *Error {
	return &Error{Kind: kind, Token: token, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrorKind carried by err, or 0 when err did not come
// from this package.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
