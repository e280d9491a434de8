package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WebhookEndpointRepository manages subscriber endpoints
type WebhookEndpointRepository interface {
	SaveEndpoint(ctx context.Context, endpoint domain.WebhookEndpoint) error
	FindEndpointsByBusiness(ctx context.Context, businessID string) ([]domain.WebhookEndpoint, error)
	FindEndpointByID(ctx context.Context, businessID string, endpointID string) (*domain.WebhookEndpoint, error)

	// DeactivateEndpoint flips active to false. Unknown or foreign endpoints yield apperrors.ErrNotFound.
	DeactivateEndpoint(ctx context.Context, businessID string, endpointID string) error
}

// WebhookOutboxWriter enqueues events inside the movement's transaction
type WebhookOutboxWriter interface {
	// EnqueueEventsInTx inserts one pending row per active endpoint of the business
	// and returns the number of rows written.
	EnqueueEventsInTx(ctx context.Context, tx pgx.Tx, businessID string, transactionID string, payload []byte, now time.Time) (int64, error)
}

// WebhookDeliveryStore is the data access used by the delivery worker
type WebhookDeliveryStore interface {
	// FetchDueEvents returns pending events of active endpoints whose retry time has come,
	// oldest first.
	FetchDueEvents(ctx context.Context, now time.Time, limit int) ([]domain.DueWebhookEvent, error)

	// MarkEventDelivered sets a pending event to delivered.
	MarkEventDelivered(ctx context.Context, eventID string, now time.Time) error

	// MarkEventFailed records a failed attempt. When terminal the event becomes failed
	// and nextRetryAt is ignored.
	MarkEventFailed(ctx context.Context, eventID string, attempts int, nextRetryAt *time.Time, terminal bool, lastError string, now time.Time) error
}

// WebhookEventReader lists outbox rows for inspection
type WebhookEventReader interface {
	ListEventsByEndpoint(ctx context.Context, endpointID string, limit int) ([]domain.WebhookEvent, error)
}

// WebhookRepositoryFacade combines all webhook-related repository interfaces
type WebhookRepositoryFacade interface {
	WebhookEndpointRepository
	WebhookOutboxWriter
	WebhookDeliveryStore
	WebhookEventReader
}
