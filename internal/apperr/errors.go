package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so transports can map it without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAuth
	KindWrite
	KindPartialFailure
	KindConflict
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "bad_credentials"
	case KindWrite:
		return "write_failed"
	case KindPartialFailure:
		return "partial_failure"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Error is the structured failure returned by the store and the access layer.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap builds an Error of the given kind carrying the underlying cause.
func Wrap(kind Kind, op string, err error, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

func Validation(op, format string, args ...interface{}) *Error {
	return New(KindValidation, op, fmt.Sprintf(format, args...))
}

func NotFound(op, format string, args ...interface{}) *Error {
	return New(KindNotFound, op, fmt.Sprintf(format, args...))
}

func Forbidden(op, format string, args ...interface{}) *Error {
	return New(KindForbidden, op, fmt.Sprintf(format, args...))
}

func Conflict(op, format string, args ...interface{}) *Error {
	return New(KindConflict, op, fmt.Sprintf(format, args...))
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the human readable part of err without the op prefix.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Msg != "" {
			return e.Msg
		}
		return e.Kind.String()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// PartialFailure reports a multi-step operation whose first write succeeded
// and whose follow-up write did not. Committed carries the id of the record
// that was persisted.
type PartialFailure struct {
	Op        string
	Committed string
	Err       error
}

func (p *PartialFailure) Error() string {
	return fmt.Sprintf("%s: partial failure, %s was recorded but the follow-up write failed: %v", p.Op, p.Committed, p.Err)
}

func (p *PartialFailure) Unwrap() error { return p.Err }

// NewPartialFailure wraps a PartialFailure so KindOf reports KindPartialFailure.
func NewPartialFailure(op, committed string, err error) *Error {
	return &Error{
		Kind: KindPartialFailure,
		Op:   op,
		Msg:  "request recorded but follow-up write failed",
		Err:  &PartialFailure{Op: op, Committed: committed, Err: err},
	}
}

// CommittedID returns the id recorded before a partial failure, if any.
func CommittedID(err error) (string, bool) {
	var p *PartialFailure
	if errors.As(err, &p) {
		return p.Committed, true
	}
	return "", false
}
