package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/tikkun/tikkun-api/internal/logging"
)

func TestLogContext(t *testing.T) {
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logging.GetRequestID(r.Context())
	})

	chain := middleware.RequestID(LogContext(handler))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	chain.ServeHTTP(httptest.NewRecorder(), req)

	if got != "req-42" {
		t.Errorf("request id in logging context = %q, want %q", got, "req-42")
	}
}

func TestLogContext_WithoutRequestID(t *testing.T) {
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logging.GetRequestID(r.Context())
	})

	LogContext(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got != "" {
		t.Errorf("request id = %q, want empty", got)
	}
}
