package service

import (
	"errors"
	"fmt"
	"net/http"

	"eventadmin/internal/api"
)

const (
	CodeValidation    = "validation"
	CodeLoginFailed   = "login_failed"
	CodeLoadFailed    = "load_failed"
	CodeRequestFailed = "request_failed"
	CodeSessionStore  = "session_store"
)

// Error is what views and services hand back to the console. Message is
// always safe to show to the operator.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func validationError(message string) *Error {
	return NewError(http.StatusBadRequest, CodeValidation, message)
}

// MessageOr returns the message the remote service put in its error body,
// or fallback when there is none.
func MessageOr(err error, fallback string) string {
	if msg := api.ServiceMessage(err); msg != "" {
		return msg
	}
	return fallback
}

// statusOf maps a client failure onto the status reported to callers.
// Transport and decode failures count as a bad gateway.
func statusOf(err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindStatus {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

// requestFailed wraps err with a fixed operator-facing message.
func requestFailed(err error, message string) *Error {
	return NewError(statusOf(err), CodeRequestFailed, message)
}
