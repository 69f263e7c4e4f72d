package middleware

import (
	"net/http"

	"github.com/frahmantamala/expense-tracker/pkg/logger"

	"github.com/google/uuid"
)

// RequestID tags the request logger with a trace id, taken from X-Trace-ID when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
