package web

import (
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is used to pass an error during the request through the
// application with web specific context.
type Error struct {
	Err    error
	Status int
	Fields []FieldError
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

// NewValidationError builds an unprocessable-entity error out of the failed
// fields. The first field's reason becomes the error message.
func NewValidationError(fields []FieldError) error {
	msg := "validation failed"
	if len(fields) > 0 {
		msg = fields[0].Error
	}

	return &Error{
		Err:    errors.New(msg),
		Status: http.StatusUnprocessableEntity,
		Fields: fields,
	}
}

// Error implements the error interface. It uses the default message of the
// wrapped error. This is what will be shown in the services' logs.
func (err *Error) Error() string {
	return err.Err.Error()
}

func (err *Error) Unwrap() error {
	return err.Err
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not a
// request error.
func StatusOf(err error) int {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr.Status
	}

	return http.StatusInternalServerError
}
