package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextNowKey ctxKey = "now"

// NowFromContext returns the pinned clock of the invocation, or time.Now.
// The current month window of every aggregate is derived from it.
func NowFromContext(ctx context.Context) time.Time {
	if ctx == nil {
		return time.Now()
	}
	if now, ok := ctx.Value(ContextNowKey).(time.Time); ok {
		return now
	}
	return time.Now()
}

func ContextWithNow(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, ContextNowKey, now)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
