package client

import (
	"context"
	"net/http"
	"testing"
)

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("FOODHUB_DEBUG", "true")
	c := New()
	if _, ok := c.http.GetClient().Transport.(*debugTransport); !ok {
		t.Fatalf("expected debugTransport to be installed when FOODHUB_DEBUG=true")
	}
}

func TestNew_NoDebugByDefault(t *testing.T) {
	t.Setenv("FOODHUB_DEBUG", "")
	t.Setenv("DEBUG", "")
	c := New()
	if _, ok := c.http.GetClient().Transport.(*debugTransport); ok {
		t.Fatalf("debugTransport installed without being requested")
	}
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	dt := &debugTransport{base: rt}
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := dt.RoundTrip(req); err == nil {
		t.Fatalf("expected error from underlying transport")
	}
}
