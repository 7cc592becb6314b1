package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of the transport.
type Kind string

const (
	KindValidation   Kind = "validation_error"
	KindBadRequest   Kind = "bad_request"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal_error"
)

// FieldError describes one rejected field of a payload.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type AppError struct {
	Kind    Kind         `json:"kind"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports a payload that failed its schema.
func Validation(message string, fields []FieldError) *AppError {
	e := New(KindValidation, http.StatusBadRequest, message, nil)
	e.Fields = fields
	return e
}

func BadRequest(message string) *AppError {
	return New(KindBadRequest, http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(KindConflict, http.StatusConflict, message, nil)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, "Internal Server Error", err)
}

// KindOf returns the kind of the first AppError in err's chain, or
// KindInternal when err carries none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
