package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// NewHTTPError builds an APIError for a non-2xx response. The body is decoded
// as a JSON object when possible; otherwise the raw text (or the status text
// for an empty body) becomes the message.
func NewHTTPError(operation string, statusCode int, body []byte) *APIError {
	detail, structured := decodeDetail(body)
	if detail == nil {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(statusCode)
		}
		detail = Detail{"message": msg}
	}

	return &APIError{
		Operation:  operation,
		Category:   getHTTPErrorCategory(statusCode, structured),
		StatusCode: statusCode,
		Body:       string(body),
		Detail:     detail,
		Underlying: fmt.Errorf("%s failed: HTTP %d", operation, statusCode),
	}
}

// NewNetworkError creates an APIError for a request that got no response.
func NewNetworkError(operation string, err error) *APIError {
	return &APIError{
		Operation:  operation,
		Category:   Transport,
		Detail:     Detail{"message": err.Error()},
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

// getHTTPErrorCategory maps a status code to a category. Only client errors
// the backend bothered to explain are treated as validation failures.
func getHTTPErrorCategory(statusCode int, structured bool) ErrorCategory {
	if !structured {
		return HTTPStatus
	}
	switch statusCode {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return Validation
	default:
		return HTTPStatus
	}
}

func decodeDetail(body []byte) (Detail, bool) {
	if len(body) == 0 {
		return nil, false
	}
	var d Detail
	if err := json.Unmarshal(body, &d); err != nil || d == nil {
		return nil, false
	}
	return d, true
}
