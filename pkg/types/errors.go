package types

import (
	"errors"
	"fmt"
)

// ErrorKind tags a failure so the HTTP layer can map it to a status code
// without leaking raw dependency errors into response bodies.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindAuthorization  ErrorKind = "authorization"
	KindNotFound       ErrorKind = "not_found"
	KindDependency     ErrorKind = "dependency"
)

type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf returns the kind attached to err, or KindDependency when err carries
// no tag. Untagged errors are opaque infrastructure failures.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindDependency
}

var (
	ErrUserNotFound         = NewError(KindNotFound, "user not found")
	ErrUserEmailNotFound    = NewError(KindNotFound, "could not find user email")
	ErrQuoteNotFound        = NewError(KindNotFound, "quote request not found")
	ErrDeliverableNotFound  = NewError(KindNotFound, "deliverable not found")
	ErrOrderNotFound        = NewError(KindNotFound, "order not found")
	ErrTicketNotFound       = NewError(KindNotFound, "support ticket not found")
	ErrProfileNotFound      = NewError(KindNotFound, "profile not found")
	ErrSampleNotFound       = NewError(KindNotFound, "sample paper not found")
	ErrNotificationNotFound = NewError(KindNotFound, "notification not found")
)
