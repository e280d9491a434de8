package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	businessCtxKey = contextKey("business")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns slog.Default() when none was stored.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// WithBusinessContext returns a copy of ctx carrying the authenticated business.
func WithBusinessContext(ctx context.Context, bc domain.BusinessContext) context.Context {
	return context.WithValue(ctx, businessCtxKey, bc)
}

// GetBusinessContext retrieves the authenticated business from the request context.
func GetBusinessContext(c *gin.Context) (domain.BusinessContext, bool) {
	bc, ok := c.Request.Context().Value(businessCtxKey).(domain.BusinessContext)
	if !ok || bc.BusinessID == "" {
		return domain.BusinessContext{}, false
	}
	return bc, true
}
