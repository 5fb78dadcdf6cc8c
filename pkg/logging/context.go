package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{ name string }

var (
	loggerKey    = ctxKey{"logger"}
	requestIDKey = ctxKey{"request_id"}
)

// WithLogger attaches logger to ctx. A nil logger attaches Default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx, or Default.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, _ := ctx.Value(loggerKey).(*zerolog.Logger); l != nil {
			return l
		}
	}
	return Default()
}

// WithRequestID records id on ctx and adds it to the context logger.
func WithRequestID(ctx context.Context, id string) context.Context {
	return tag(context.WithValue(ctx, requestIDKey, id), "request_id", id)
}

// RequestID returns the id recorded by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func WithProduct(ctx context.Context, id string) context.Context {
	return tag(ctx, "product_id", id)
}

func WithOperation(ctx context.Context, op string) context.Context {
	return tag(ctx, "operation", op)
}

func tag(ctx context.Context, key, value string) context.Context {
	l := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &l)
}
