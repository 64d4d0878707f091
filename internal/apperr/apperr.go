package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can map it to a
// status code without inspecting message text.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUpload          Kind = "upload"
	KindPersistence     Kind = "persistence"
	KindAuthorization   Kind = "authorization"
	KindStateTransition Kind = "state_transition"
)

type Error struct {
	Kind    Kind
	Field   string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func Upload(message string, cause error) *Error {
	return &Error{Kind: KindUpload, Message: message, cause: cause}
}

func Persistence(message string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: message, cause: cause}
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func StateTransition(field, message string) *Error {
	return &Error{Kind: KindStateTransition, Field: field, Message: message}
}

// KindOf returns the Kind of err, or "" when err carries no Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// FieldOf returns the offending field of err, or "" when none is attached.
func FieldOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// MessageOf returns the user-facing message of err. Unknown errors map to a
// generic message so internal detail never leaks to a response body.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
