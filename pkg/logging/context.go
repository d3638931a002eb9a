package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithLogger attaches logger to ctx. A nil logger attaches the default one.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Attached returns the logger carried by ctx, if any.
func Attached(ctx context.Context) (*zerolog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	logger, ok := ctx.Value(ctxKey{}).(*zerolog.Logger)
	return logger, ok && logger != nil
}

// FromContext returns the logger carried by ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := Attached(ctx); ok {
		return logger
	}
	return Default()
}

// WithOperation tags every line logged through ctx with the command name.
func WithOperation(ctx context.Context, operation string) context.Context {
	return with(ctx, "operation", operation)
}

// WithBookID tags every line logged through ctx with a book identifier.
func WithBookID(ctx context.Context, id string) context.Context {
	return with(ctx, "book_id", id)
}

func with(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}
