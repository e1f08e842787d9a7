package provider_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cityscout/backend/internal/provider"
)

// newTestClient returns a resilient client pointed at the given test server,
// with retries effectively disabled so failure tests stay fast.
func newTestClient(t *testing.T, srv *httptest.Server) *provider.Client {
	t.Helper()
	return provider.NewClient(t.Name(), srv.Client(), provider.Backoff{
		MaxRetries:      0,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
	})
}

// jsonServer serves the given body for every request and records the last
// request it saw.
func jsonServer(t *testing.T, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	last := new(http.Request)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*last = *r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, last
}

// failingServer always answers with the given status code.
func failingServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}
