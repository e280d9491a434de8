package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/ports/services"
	"github.com/SscSPs/money_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// APIKeyHeader carries the caller's raw key.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth resolves the X-API-Key header to a business and stores it in the
// request context. Requests without a valid key are rejected with 401.
func APIKeyAuth(authSvc services.APIKeyAuthenticatorSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		rawKey := strings.TrimSpace(c.GetHeader(APIKeyHeader))
		if rawKey == "" {
			logger.Warn("API key header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: apperrors.PublicMessage(apperrors.ErrUnauthorized)})
			return
		}

		bc, err := authSvc.Authenticate(c.Request.Context(), rawKey)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindUnauthorized {
				logger.Warn("API key rejected")
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: apperrors.PublicMessage(err)})
				return
			}
			logger.Error("API key lookup failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: apperrors.PublicMessage(err)})
			return
		}

		enriched := logger.With(slog.String("business_id", bc.BusinessID))
		ctx := WithBusinessContext(c.Request.Context(), *bc)
		c.Request = c.Request.WithContext(WithLogger(ctx, enriched))
		c.Next()
	}
}
