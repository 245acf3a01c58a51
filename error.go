package baseclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDeserialize is wrapped by every payload deserialization failure.
	ErrDeserialize = errors.New("failed to deserialize payload")
	// ErrDisconnected is returned by transports used after Disconnect.
	ErrDisconnected = errors.New("transport disconnected")
)

// Error returns the error message
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("code: %d, message: %s, data: %v", e.Code, e.Message, e.Data)
}

// NewError creates a new JSON-RPC error
func NewError(code int, message string, data interface{}) *Error {
	return &Error{Code: code, Message: message, Data: data}
}

// NewParsingError creates a new parsing error
func NewParsingError(message string, data []byte) *Error {
	return NewError(ParseError, message, string(data))
}

// NewInternalError creates a new internal error
func NewInternalError(message string, data []byte) *Error {
	return NewError(InternalError, message, string(data))
}

// StatusError is returned when the server answers with a non-2xx status.
// It carries the full response so callers can inspect server-provided details.
type StatusError struct {
	Response *Response
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Response == nil {
		return "unexpected status"
	}
	body := string(e.Response.Body)
	if len(body) > 256 {
		body = body[:256]
	}
	if body == "" {
		return fmt.Sprintf("unexpected status %d", e.Response.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Response.Status, body)
}

// NewStatusError wraps a non-2xx response; 401 responses become UnauthorizedError.
func NewStatusError(response *Response) error {
	if response.Status == http.StatusUnauthorized {
		return &UnauthorizedError{StatusError: StatusError{Response: response}}
	}
	return &StatusError{Response: response}
}

// UnauthorizedError represents an HTTP 401 Unauthorized error returned by a transport.
type UnauthorizedError struct {
	StatusError
}

// Error implements the error interface.
func (e *UnauthorizedError) Error() string {
	return "unauthorized: " + e.StatusError.Error()
}

// Unwrap exposes the underlying status error.
func (e *UnauthorizedError) Unwrap() error {
	return &e.StatusError
}

// IsUnauthorized returns true if err is or wraps an UnauthorizedError.
func IsUnauthorized(err error) bool {
	var target *UnauthorizedError
	return errors.As(err, &target)
}

// ResponseOf returns the response carried by a status error, if any.
func ResponseOf(err error) (*Response, bool) {
	var target *StatusError
	if errors.As(err, &target) {
		return target.Response, true
	}
	return nil, false
}
