package jwt

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tickjwt/pkg/logger"
)

type requestIDKey struct{}

func withRequestID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id of the Request whose decode produced
// ctx. The context passed to claim validators and verifiers carries it.
func RequestIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(requestIDKey{}).(uuid.UUID)
	return id, ok
}

// LoggerExtractor adds a request_id attribute to records logged with a
// decode context. Use it with logger.WithContextExtractors.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := RequestIDFromContext(ctx); ok {
			return logger.RequestID(id.String()), true
		}
		return slog.Attr{}, false
	}
}
