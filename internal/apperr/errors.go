// Package apperr defines the error kinds shared by repositories, services and
// the HTTP error boundary.
package apperr

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrAuth        = errors.New("not authorized")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrStorage     = errors.New("storage error")
	ErrRateLimited = errors.New("too many attempts")
)

// Error is a classified error with a client-facing message.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is lets errors.Is match the error against its kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string, fields map[string]string) error {
	return &Error{Kind: ErrValidation, Message: msg, Fields: fields}
}

func Auth(msg string) error {
	return &Error{Kind: ErrAuth, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func RateLimited(msg string) error {
	return &Error{Kind: ErrRateLimited, Message: msg}
}

// Storage wraps a driver failure.
func Storage(msg string, err error) error {
	return &Error{Kind: ErrStorage, Message: msg, Err: err}
}

// FromValidator converts validator output into a ValidationError keyed by JSON field name.
func FromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Validation(err.Error(), nil)
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		if e.Param() != "" {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s=%s' tag", e.Field(), e.Tag(), e.Param())
		} else {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return Validation("Validation failed", fields)
}
