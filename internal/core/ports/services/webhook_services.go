package services

import (
	"context"

	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// OutboxEnqueuerSvc fans a committed-to-be transaction out to the outbox.
type OutboxEnqueuerSvc interface {
	// EnqueueTransactionCreated writes one pending event per active endpoint of the
	// business using the caller's tx and returns how many were written.
	EnqueueTransactionCreated(ctx context.Context, tx pgx.Tx, businessID string, txn domain.Transaction) (int64, error)
}

// WebhookEndpointSvc manages subscriber endpoints.
type WebhookEndpointSvc interface {
	CreateEndpoint(ctx context.Context, businessID string, url string) (*domain.WebhookEndpoint, error)
	ListEndpoints(ctx context.Context, businessID string) ([]domain.WebhookEndpoint, error)
	DeactivateEndpoint(ctx context.Context, businessID string, endpointID string) error
	ListEndpointEvents(ctx context.Context, businessID string, endpointID string, limit int) ([]domain.WebhookEvent, error)
}

// WebhookSvcFacade combines all webhook-related service interfaces
type WebhookSvcFacade interface {
	OutboxEnqueuerSvc
	WebhookEndpointSvc
}
