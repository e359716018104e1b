package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies how a call failed.
type Kind int

const (
	// KindTransport: the service could not be reached or the exchange broke off.
	KindTransport Kind = iota + 1
	// KindStatus: the service answered with a non-2xx status.
	KindStatus
	// KindDecode: the service answered 2xx with a body we could not read.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindStatus && e.Message != "":
		return fmt.Sprintf("%s: %d: %s", e.Op, e.Status, e.Message)
	case e.Kind == KindStatus:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether the service rejected the credentials or token.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == KindStatus && (apiErr.Status == 401 || apiErr.Status == 403)
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTransport
}

// ServiceMessage returns the human-readable message the service put in its
// error body, or "" when there is none.
func ServiceMessage(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindStatus {
		return ""
	}
	return apiErr.Message
}

// errorBody mirrors the shapes the service uses for failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func decodeErrorBody(body []byte) (code, message string) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return "", ""
	}
	message = strings.TrimSpace(eb.Message)
	if message == "" {
		message = strings.TrimSpace(eb.Error)
	}
	return strings.TrimSpace(eb.Code), message
}
