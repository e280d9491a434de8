package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/money_ledger/internal/core/ports/services"
	"github.com/SscSPs/money_ledger/internal/dto"
	"github.com/SscSPs/money_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type webhookHandler struct {
	webhookService portssvc.WebhookEndpointSvc
}

func registerWebhookRoutes(rg *gin.RouterGroup, webhookService portssvc.WebhookEndpointSvc) {
	h := &webhookHandler{webhookService: webhookService}

	hooks := rg.Group("/webhooks")
	{
		hooks.POST("", h.createEndpoint)
		hooks.GET("", h.listEndpoints)
		hooks.DELETE("/:id", h.deactivateEndpoint)
		hooks.GET("/:id/events", h.listEndpointEvents)
	}
}

// createEndpoint godoc
// @Summary Register a webhook endpoint
// @Tags webhooks
// @Accept  json
// @Produce  json
// @Param   endpoint body dto.CreateWebhookRequest true "Endpoint URL"
// @Success 201 {object} dto.WebhookEndpointResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid URL"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /webhooks [post]
func (h *webhookHandler) createEndpoint(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bc, ok := businessFromContext(c, logger)
	if !ok {
		return
	}

	var req dto.CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	endpoint, err := h.webhookService.CreateEndpoint(c.Request.Context(), bc.BusinessID, req.URL)
	if err != nil {
		respondError(c, logger, err, "Failed to create webhook endpoint")
		return
	}

	logger.Info("Webhook endpoint registered", slog.String("endpoint_id", endpoint.EndpointID))
	c.JSON(http.StatusCreated, dto.ToWebhookEndpointResponse(endpoint))
}

// listEndpoints godoc
// @Summary List webhook endpoints
// @Tags webhooks
// @Produce  json
// @Success 200 {array} dto.WebhookEndpointResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /webhooks [get]
func (h *webhookHandler) listEndpoints(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bc, ok := businessFromContext(c, logger)
	if !ok {
		return
	}

	endpoints, err := h.webhookService.ListEndpoints(c.Request.Context(), bc.BusinessID)
	if err != nil {
		respondError(c, logger, err, "Failed to list webhook endpoints")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWebhookEndpointResponse(endpoints))
}

// deactivateEndpoint godoc
// @Summary Deactivate a webhook endpoint
// @Description Stops new events for the endpoint. Already queued events are kept but not delivered.
// @Tags webhooks
// @Param   id path string true "Endpoint ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Malformed ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Endpoint not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /webhooks/{id} [delete]
func (h *webhookHandler) deactivateEndpoint(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bc, ok := businessFromContext(c, logger)
	if !ok {
		return
	}

	endpointID := c.Param("id")
	if err := h.webhookService.DeactivateEndpoint(c.Request.Context(), bc.BusinessID, endpointID); err != nil {
		respondError(c, logger, err, "Failed to deactivate webhook endpoint")
		return
	}

	logger.Info("Webhook endpoint deactivated", slog.String("endpoint_id", endpointID))
	c.Status(http.StatusNoContent)
}

// listEndpointEvents godoc
// @Summary List delivery events of an endpoint
// @Tags webhooks
// @Produce  json
// @Param   id path string true "Endpoint ID"
// @Param   limit query int false "Page size (1-200)" default(50)
// @Success 200 {array} dto.WebhookEventResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed ID or query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Endpoint not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /webhooks/{id}/events [get]
func (h *webhookHandler) listEndpointEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bc, ok := businessFromContext(c, logger)
	if !ok {
		return
	}

	var params dto.ListWebhookEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	events, err := h.webhookService.ListEndpointEvents(c.Request.Context(), bc.BusinessID, c.Param("id"), params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list webhook events")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWebhookEventResponse(events))
}
