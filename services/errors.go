package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind classifies a service failure. Controllers map kinds to HTTP statuses.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalid
	KindInvalidState
	KindConflict
	KindInsufficientPayment
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	case KindInvalidState:
		return "invalid_state"
	case KindConflict:
		return "conflict"
	case KindInsufficientPayment:
		return "insufficient_payment"
	case KindStorage:
		return "storage_failure"
	}
	return "unknown"
}

// Error is the error type returned by every service operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrConflict)
// works for every conflict regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalid             = &Error{Kind: KindInvalid, Message: "invalid"}
	ErrInvalidState        = &Error{Kind: KindInvalidState, Message: "invalid state"}
	ErrConflict            = &Error{Kind: KindConflict, Message: "conflict"}
	ErrInsufficientPayment = &Error{Kind: KindInsufficientPayment, Message: "insufficient payment"}
	ErrStorage             = &Error{Kind: KindStorage, Message: "storage failure"}
)

// KindOf returns the kind of err, or KindStorage for errors that did not
// come from this package.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStorage
}

func newError(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) error {
	return newError(KindNotFound, format, args...)
}

func invalid(format string, args ...interface{}) error {
	return newError(KindInvalid, format, args...)
}

func invalidState(format string, args ...interface{}) error {
	return newError(KindInvalidState, format, args...)
}

func conflict(format string, args ...interface{}) error {
	return newError(KindConflict, format, args...)
}

// classify maps a gorm error onto the taxonomy. Errors already produced by
// this package pass through unchanged.
func classify(err error, what string) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound("%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict("%s already exists", what)
	}
	return &Error{Kind: KindStorage, Message: what + " storage failure", Err: err}
}
