package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

// FromContext returns the logger attached to ctx, falling back to Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, _ := ctx.Value(ctxKey{}).(*log.Logger); logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// With derives a context whose logger adds keyvals to every entry.
func With(ctx context.Context, keyvals ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
