package client

import (
	apierrors "github.com/foodhub/foodhub-client/client/internal/errors"
)

// Re-export the SDK error model so callers compare against a single package.
type (
	APIError      = apierrors.APIError
	ErrorCategory = apierrors.ErrorCategory
	ErrorDetail   = apierrors.Detail
)

const (
	CategoryTransport  = apierrors.Transport
	CategoryHTTPStatus = apierrors.HTTPStatus
	CategoryValidation = apierrors.Validation
)

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool { return apierrors.IsNotFound(err) }

// IsUnauthorized reports whether the backend answered 401 or 403.
func IsUnauthorized(err error) bool { return apierrors.IsUnauthorized(err) }

// DetailOf returns the backend error payload carried by err, or
// {"message": err.Error()} when the request never got an answer.
func DetailOf(err error) ErrorDetail { return apierrors.DetailOf(err) }
