package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
)

// Serialize runs one request at a time so each read-modify-write of the
// store completes before the next begins.
func Serialize(next http.Handler) http.Handler {
	var mu sync.Mutex
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// CollectEvents attaches an event collector so handlers can report alerts
// raised while serving the request.
func CollectEvents(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := events.WithCollector(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AsOf pins the clock of the request from ?as_of=2006-01-02.
func AsOf(parse func(string) (time.Time, bool)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if raw := r.URL.Query().Get("as_of"); raw != "" {
				if t, ok := parse(raw); ok {
					ctx = internal.ContextWithNow(ctx, t)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
