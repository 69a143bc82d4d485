package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	resty "github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	apierrors "github.com/foodhub/foodhub-client/client/internal/errors"
)

// RequestIDHeader carries a per-request UUID so client and backend logs can
// be correlated.
const RequestIDHeader = "X-Request-ID"

// call describes one backend request. Path may contain {placeholders}
// filled from params; resty escapes the values.
type call struct {
	op     string
	method string
	path   string
	params map[string]string
	token  string
	body   any
}

// execute is the single request path of the SDK. A 2xx body is decoded into
// out (nil out or empty body leaves it untouched); anything else becomes an
// *APIError.
func execute(ctx context.Context, rc *resty.Client, c call, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := rc.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, uuid.NewString()).
		SetHeader("Accept", "application/json")
	if len(c.params) > 0 {
		req.SetPathParams(c.params)
	}
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	if c.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(c.body)
	}

	start := time.Now()
	resp, err := req.Execute(c.method, c.path)
	if err != nil {
		observe(c.op, outcomeTransport, start)
		return apierrors.NewNetworkError(c.op, err)
	}
	if !resp.IsSuccess() {
		observe(c.op, outcomeHTTP, start)
		return apierrors.NewHTTPError(c.op, resp.StatusCode(), resp.Body())
	}

	body := bytes.TrimSpace(resp.Body())
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			observe(c.op, outcomeDecode, start)
			return fmt.Errorf("%s: decode response: %w", c.op, err)
		}
	}
	observe(c.op, outcomeOK, start)
	return nil
}
