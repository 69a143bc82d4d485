// Package errors provides error classification for the client SDK.
// Callers use the category to tell transport failures apart from
// backend rejections.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCategory tells where a failed request broke down.
type ErrorCategory int

const (
	// Transport errors never produced an HTTP response.
	// Examples: connection refused, DNS failure, the client timeout.
	Transport ErrorCategory = iota

	// HTTPStatus errors carry a non-2xx response without a usable body.
	HTTPStatus

	// Validation errors are rejections the backend explained in its body,
	// e.g. 400 Bad Request with {"message": "email taken"}.
	Validation
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Transport:
		return "Transport"
	case HTTPStatus:
		return "HTTPStatus"
	case Validation:
		return "Validation"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Detail is the backend's error payload. It is opaque apart from the
// conventional "message" key.
type Detail map[string]any

// Message returns the "message" entry or "" when absent.
func (d Detail) Message() string {
	if d == nil {
		return ""
	}
	if m, ok := d["message"].(string); ok {
		return m
	}
	return ""
}

// APIError wraps a failed request with categorization metadata.
type APIError struct {
	Operation  string
	Category   ErrorCategory
	StatusCode int    // HTTP status code (0 for transport errors)
	Body       string // Response body for debugging
	Detail     Detail // Body decoded as a JSON object, or {"message": ...}
	Underlying error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		if msg := e.Detail.Message(); msg != "" {
			return fmt.Sprintf("[%s] %s: HTTP %d: %s", e.Category, e.Operation, e.StatusCode, msg)
		}
		return fmt.Sprintf("[%s] %s: HTTP %d", e.Category, e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *APIError) Unwrap() error {
	return e.Underlying
}

// HasStatus reports whether err is an APIError with the given status code.
func HasStatus(err error, code int) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool { return HasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports whether the backend rejected the bearer token.
func IsUnauthorized(err error) bool {
	return HasStatus(err, http.StatusUnauthorized) || HasStatus(err, http.StatusForbidden)
}

// DetailOf extracts the backend payload from err. Errors that never reached
// the backend yield {"message": err.Error()}.
func DetailOf(err error) Detail {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if stderrors.As(err, &apiErr) && apiErr.Detail != nil {
		return apiErr.Detail
	}
	return Detail{"message": err.Error()}
}
