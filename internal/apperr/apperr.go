package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable machine-readable error code surfaced to API clients.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
	CodeConflict          Code = "CONFLICT"
	CodeAuthFailure       Code = "AUTH_FAILURE"
	CodeExternalService   Code = "EXTERNAL_SERVICE_ERROR"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Error carries a code, a client-safe message and an optional cause.
// The cause is logged server-side, never serialized to clients.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func InsufficientFunds(message string) *Error {
	return New(CodeInsufficientFunds, message)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func AuthFailure(message string) *Error {
	return New(CodeAuthFailure, message)
}

func ExternalService(message string, err error) *Error {
	return Wrap(CodeExternalService, message, err)
}

func Internal(message string, err error) *Error {
	return Wrap(CodeInternal, message, err)
}

// From extracts an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("unexpected error", err)
}

// HTTPStatus maps an error code to the status the HTTP layer responds with.
func HTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeInsufficientFunds:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeAuthFailure:
		return http.StatusUnauthorized
	case CodeExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
