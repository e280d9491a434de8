package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/SscSPs/money_ledger/internal/dto"
	"github.com/SscSPs/money_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps an error kind to its HTTP status.
func statusForError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindBadRequest:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the caller-safe message for err. Internal detail only goes to the log.
func respondError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, dto.ErrorResponse{Error: apperrors.PublicMessage(err)})
}

// respondBindError reports a malformed body or query string.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// businessFromContext returns the authenticated business or writes a 401.
func businessFromContext(c *gin.Context, logger *slog.Logger) (domain.BusinessContext, bool) {
	bc, ok := middleware.GetBusinessContext(c)
	if !ok {
		logger.Error("Business context not found in request context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return domain.BusinessContext{}, false
	}
	return bc, true
}
