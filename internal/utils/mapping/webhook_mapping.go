package mapping

import (
	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/SscSPs/money_ledger/internal/models"
)

// ToModelWebhookEndpoint converts a domain WebhookEndpoint to a model WebhookEndpoint
func ToModelWebhookEndpoint(d domain.WebhookEndpoint) models.WebhookEndpoint {
	return models.WebhookEndpoint{
		EndpointID: d.EndpointID,
		BusinessID: d.BusinessID,
		URL:        d.URL,
		Active:     d.Active,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainWebhookEndpoint converts a model WebhookEndpoint to a domain WebhookEndpoint
func ToDomainWebhookEndpoint(m models.WebhookEndpoint) domain.WebhookEndpoint {
	return domain.WebhookEndpoint{
		EndpointID: m.EndpointID,
		BusinessID: m.BusinessID,
		URL:        m.URL,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainWebhookEvent converts a model WebhookEvent to a domain WebhookEvent
func ToDomainWebhookEvent(m models.WebhookEvent) domain.WebhookEvent {
	return domain.WebhookEvent{
		EventID:       m.EventID,
		EndpointID:    m.EndpointID,
		TransactionID: m.TransactionID,
		Payload:       m.Payload,
		Status:        domain.WebhookEventStatus(m.Status),
		Attempts:      m.Attempts,
		NextRetryAt:   m.NextRetryAt,
		LastError:     m.LastError,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
