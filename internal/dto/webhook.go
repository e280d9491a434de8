package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/money_ledger/internal/core/domain"
)

// CreateWebhookRequest registers a subscriber URL.
type CreateWebhookRequest struct {
	URL string `json:"url" binding:"required"`
}

// WebhookEndpointResponse defines the data returned for a webhook endpoint.
type WebhookEndpointResponse struct {
	EndpointID string    `json:"id"`
	URL        string    `json:"url"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToWebhookEndpointResponse converts a domain.WebhookEndpoint.
func ToWebhookEndpointResponse(e *domain.WebhookEndpoint) WebhookEndpointResponse {
	return WebhookEndpointResponse{
		EndpointID: e.EndpointID,
		URL:        e.URL,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt,
	}
}

// ToListWebhookEndpointResponse converts a slice of endpoints.
func ToListWebhookEndpointResponse(endpoints []domain.WebhookEndpoint) []WebhookEndpointResponse {
	res := make([]WebhookEndpointResponse, len(endpoints))
	for i := range endpoints {
		res[i] = ToWebhookEndpointResponse(&endpoints[i])
	}
	return res
}

// WebhookEventResponse shows the delivery state of one outbox row.
type WebhookEventResponse struct {
	EventID       string                    `json:"id"`
	TransactionID string                    `json:"transaction_id"`
	Status        domain.WebhookEventStatus `json:"status"`
	Attempts      int                       `json:"attempts"`
	NextRetryAt   *time.Time                `json:"next_retry_at"`
	LastError     *string                   `json:"last_error,omitempty"`
	Payload       json.RawMessage           `json:"payload" swaggertype:"object"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// ToListWebhookEventResponse converts a slice of outbox rows.
func ToListWebhookEventResponse(events []domain.WebhookEvent) []WebhookEventResponse {
	res := make([]WebhookEventResponse, len(events))
	for i, e := range events {
		res[i] = WebhookEventResponse{
			EventID:       e.EventID,
			TransactionID: e.TransactionID,
			Status:        e.Status,
			Attempts:      e.Attempts,
			NextRetryAt:   e.NextRetryAt,
			LastError:     e.LastError,
			Payload:       json.RawMessage(e.Payload),
			CreatedAt:     e.CreatedAt,
			UpdatedAt:     e.UpdatedAt,
		}
	}
	return res
}

// ListWebhookEventsParams defines query parameters for listing endpoint events.
type ListWebhookEventsParams struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=200"`
}
