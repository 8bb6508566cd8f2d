package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a service failure
type Kind string

const (
	KindValidation      Kind = "ValidationError"
	KindUnauthenticated Kind = "Unauthenticated"
	KindUnauthorized    Kind = "Unauthorized"
	KindNotFound        Kind = "NotFound"
	KindEmptyCart       Kind = "EmptyCart"
	KindInvalidState    Kind = "InvalidState"
	KindInternal        Kind = "InternalError"
)

// HTTPStatus is the response status for the kind
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindEmptyCart, KindInvalidState:
		return http.StatusBadRequest
	case KindUnauthenticated, KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is returned by every service operation. Message is safe to show to
// clients; Err keeps the cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// AsError finds a service error in err's chain
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// KindOf reports the kind of err, InternalError when it is not a service error
func KindOf(err error) Kind {
	if se, ok := AsError(err); ok {
		return se.Kind
	}
	return KindInternal
}

func validationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func invalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

func internal(err error) *Error {
	if se, ok := AsError(err); ok {
		return se
	}
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

var (
	errUnauthenticated = NewError(KindUnauthenticated, "please authenticate")
	errUnauthorized    = NewError(KindUnauthorized, "please authenticate as an admin")
	errEmptyCart       = NewError(KindEmptyCart, "cart is empty")
)
