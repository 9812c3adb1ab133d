package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error surfaced by the billing core and its boundary
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindReference
	KindConstraint
	KindBoundary
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	case KindReference:
		return "ReferenceError"
	case KindConstraint:
		return "ConstraintError"
	case KindBoundary:
		return "BoundaryError"
	default:
		return "UnknownError"
	}
}

// Error is the base error type. Op and ID carry enough context to log the
// failure without the caller re-wrapping it.
type Error struct {
	Kind    Kind
	Op      string
	ID      int64
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		if e.ID != 0 {
			fmt.Fprintf(&b, "(%d)", e.ID)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chain inspection
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithID records the target id of the failed operation
func (e *Error) WithID(id int64) *Error {
	e.ID = id
	return e
}

// WithCause adds an underlying error cause
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func newError(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Validation reports a missing required field or structurally malformed input
func Validation(op, format string, args ...interface{}) *Error {
	return newError(KindValidation, op, fmt.Sprintf(format, args...))
}

// NotFound reports that the target record has no header row
func NotFound(op, format string, args ...interface{}) *Error {
	return newError(KindNotFound, op, fmt.Sprintf(format, args...))
}

// Reference reports a foreign-key violation raised on create or update
func Reference(op, format string, args ...interface{}) *Error {
	return newError(KindReference, op, fmt.Sprintf(format, args...))
}

// Constraint reports a delete blocked by rows that still reference the target
func Constraint(op, format string, args ...interface{}) *Error {
	return newError(KindConstraint, op, fmt.Sprintf(format, args...))
}

// Boundary wraps any other storage failure, passed through with its original message
func Boundary(op string, cause error) *Error {
	return newError(KindBoundary, op, "boundary call failed").WithCause(cause)
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsReference(err error) bool  { return KindOf(err) == KindReference }
func IsConstraint(err error) bool { return KindOf(err) == KindConstraint }
func IsBoundary(err error) bool   { return KindOf(err) == KindBoundary }
