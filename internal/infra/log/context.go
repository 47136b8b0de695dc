package logs

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyInvocationID is the key for storing the command invocation ID in context.
	KeyInvocationID ContextKey = "invocation_id"

	// KeyLogger is the key for storing the invocation-scoped logger in context.
	KeyLogger ContextKey = "logger"
)

// WithInvocation tags ctx with a fresh invocation ID and a logger carrying it.
func WithInvocation(ctx context.Context, logger *slog.Logger, command string) context.Context {
	id := uuid.New().String()
	ctx = context.WithValue(ctx, KeyInvocationID, id)

	return WithLogger(ctx, logger.With(
		slog.String("invocation_id", id),
		slog.String("command", command),
	))
}

// InvocationID extracts the invocation ID from ctx, or "" when none is set.
func InvocationID(ctx context.Context) string {
	if id, ok := ctx.Value(KeyInvocationID).(string); ok {
		return id
	}

	return ""
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// FromContext extracts the logger from ctx.
// If not found, returns the provided fallback logger.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
