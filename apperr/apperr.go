// Package apperr defines the failure kinds surfaced by the service layer.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	NotFound
	Unavailable
	CrossRestaurantOrder
	BelowMinimum
	Unauthorized
	Forbidden
	ValidationFailed
	InvalidTransition
	Conflict
)

var kindNames = map[Kind]string{
	Internal:             "INTERNAL",
	NotFound:             "NOT_FOUND",
	Unavailable:          "UNAVAILABLE",
	CrossRestaurantOrder: "CROSS_RESTAURANT_ORDER",
	BelowMinimum:         "BELOW_MINIMUM",
	Unauthorized:         "UNAUTHORIZED",
	Forbidden:            "FORBIDDEN",
	ValidationFailed:     "VALIDATION_FAILED",
	InvalidTransition:    "INVALID_TRANSITION",
	Conflict:             "CONFLICT",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a classified failure with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind. A nil err yields nil.
func Wrap(kind Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the kind of err, Internal when err is unclassified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
