package entities

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCleanupNotConfirmed is returned when a destructive cleanup is requested
// without explicit confirmation.
var ErrCleanupNotConfirmed = errors.New("cleanup deletes repositories and must be confirmed")

// ErrDestructiveNotSupported is returned when the configured provider does not
// expose repository deletion.
var ErrDestructiveNotSupported = errors.New("provider does not support repository deletion")

// NetworkError is a transport-level failure: DNS, connection, TLS or timeout.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-success HTTP status returned where success was expected.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// AuthError refines an APIError carrying 401 or 403.
type AuthError struct {
	*APIError
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.APIError.Error()
}

func (e *AuthError) Unwrap() error { return e.APIError }

// ParseError means the response body was malformed or lacked an expected field.
type ParseError struct {
	Op    string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: cannot parse %q: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: response is missing %q", e.Op, e.Field)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewStatusError builds the error for a non-success status, promoting
// 401 and 403 to AuthError.
func NewStatusError(op string, statusCode int, body string) error {
	apiErr := &APIError{Op: op, StatusCode: statusCode, Body: body}
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return &AuthError{APIError: apiErr}
	}
	return apiErr
}

// IsNotFound reports whether err carries a 404 status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
