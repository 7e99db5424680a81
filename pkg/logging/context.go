package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey keeps this package's context values from colliding with other
// packages'.
type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
)

// WithLogger returns a context carrying logger. A nil logger stores the
// default one.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger carried by ctx, falling back to the default
// logger when ctx carries none.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// Ctx is shorthand for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithField returns a context whose logger carries an extra field on every
// entry it writes.
func WithField(ctx context.Context, key string, value any) context.Context {
	child := appendField(FromContext(ctx).With(), key, value).Logger()
	return WithLogger(ctx, &child)
}

// WithLocation tags the context logger with an airport code. Sync and edit
// paths apply it once at the top so every entry below names the location.
func WithLocation(ctx context.Context, locationCode string) context.Context {
	return WithField(ctx, "location", locationCode)
}

// WithFacility tags the context logger with a facility name.
func WithFacility(ctx context.Context, name string) context.Context {
	return WithField(ctx, "facility", name)
}

// WithRequestID stores an HTTP request ID in the context and tags the
// context logger with it, correlating handler log lines with the manager
// work they trigger.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return WithField(ctx, "request_id", requestID)
}

// RequestID returns the request ID stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// appendField adds one field to a logger context, keeping the common types
// off the reflection path.
func appendField(logCtx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return logCtx.Str(key, v)
	case int:
		return logCtx.Int(key, v)
	case int64:
		return logCtx.Int64(key, v)
	case float64:
		return logCtx.Float64(key, v)
	case bool:
		return logCtx.Bool(key, v)
	case error:
		return logCtx.Err(v)
	default:
		return logCtx.Interface(key, v)
	}
}
