package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yucheng-ou/kaleido-coin/internal/infrastructure/metrics"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	m := metrics.NewWith(prometheus.NewRegistry())
	mw := NewMetricsMiddleware(m)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/u-1/balance", nil)
	rec := httptest.NewRecorder()

	mw.Wrap(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status passthrough, got %d", rec.Code)
	}

	got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/accounts/:userID/balance", "418"))
	if got != 1 {
		t.Fatalf("expected 1 recorded request, got %v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/health", "/health"},
		{"/api/v1/accounts/", "/api/v1/accounts/"},
		{"/api/v1/accounts/u-123", "/api/v1/accounts/:userID"},
		{"/api/v1/accounts/u-123/balance", "/api/v1/accounts/:userID/balance"},
		{"/api/v1/accounts/u-123/entries", "/api/v1/accounts/:userID/entries"},
		{"/api/v1/rewards/invite", "/api/v1/rewards/invite"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
