package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	resty "github.com/go-resty/resty/v2"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// newTestClient points a resty client at srv under the /v1 prefix the real
// backend uses.
func newTestClient(srv *httptest.Server) *resty.Client {
	return resty.New().SetBaseURL(srv.URL + "/v1").SetTimeout(3 * time.Second)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
