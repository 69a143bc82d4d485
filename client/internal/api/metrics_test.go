package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	resty "github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExecute_RecordsOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/ok":
			writeJSON(w, http.StatusOK, `{}`)
		case "/v1/bad-json":
			writeJSON(w, http.StatusOK, `{`)
		default:
			writeJSON(w, http.StatusNotFound, `{"message":"nope"}`)
		}
	}))
	defer srv.Close()
	rc := newTestClient(srv)

	const op = "metrics check"
	run := func(path string) {
		var out map[string]any
		_ = execute(context.Background(), rc, call{op: op, method: http.MethodGet, path: path}, &out)
	}
	run("/ok")
	run("/ok")
	run("/missing")
	run("/bad-json")
	_ = execute(context.Background(), resty.New().SetBaseURL("http://example.com").SetTransport(&errRT{}),
		call{op: op, method: http.MethodGet, path: "/ok"}, nil)

	for outcome, want := range map[string]float64{
		outcomeOK:        2,
		outcomeHTTP:      1,
		outcomeDecode:    1,
		outcomeTransport: 1,
	} {
		if got := testutil.ToFloat64(requestsTotal.WithLabelValues(op, outcome)); got != want {
			t.Errorf("requests_total{outcome=%q} = %v, want %v", outcome, got, want)
		}
	}
	if n := testutil.CollectAndCount(requestDuration, "foodhub_client_request_duration_seconds"); n == 0 {
		t.Error("expected request duration samples")
	}
}
