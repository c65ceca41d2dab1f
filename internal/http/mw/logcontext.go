package mw

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/tikkun/tikkun-api/internal/logging"
)

// LogContext copies the chi request ID into the logging context so that
// downstream log lines and logfilter rules can match on request_id.
// Must run after middleware.RequestID.
func LogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(logging.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
