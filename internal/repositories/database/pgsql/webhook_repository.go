package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/money_ledger/internal/models"
	"github.com/SscSPs/money_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxWebhookRepository struct {
	BaseRepository
}

func newPgxWebhookRepository(pool DBPool) *PgxWebhookRepository {
	return &PgxWebhookRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WebhookRepositoryFacade = (*PgxWebhookRepository)(nil)

const (
	selectEndpointFields = `endpoint_id, business_id, url, active, created_at`

	insertEndpointQuery = `
		INSERT INTO webhook_endpoints (endpoint_id, business_id, url, active, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	findEndpointsByBusinessQuery = `
		SELECT ` + selectEndpointFields + `
		FROM webhook_endpoints
		WHERE business_id = $1
		ORDER BY created_at ASC, endpoint_id ASC`

	findEndpointByIDQuery = `
		SELECT ` + selectEndpointFields + `
		FROM webhook_endpoints
		WHERE business_id = $1 AND endpoint_id = $2`

	deactivateEndpointQuery = `
		UPDATE webhook_endpoints SET active = false
		WHERE business_id = $1 AND endpoint_id = $2`

	// One row per active endpoint, in a single statement so the fan-out is atomic
	// with the caller's transaction.
	enqueueEventsQuery = `
		INSERT INTO webhook_events (event_id, endpoint_id, transaction_id, payload, status, attempts, next_retry_at, created_at, updated_at)
		SELECT gen_random_uuid(), e.endpoint_id, $2, $3, 'pending', 0, NULL, $4, $4
		FROM webhook_endpoints e
		WHERE e.business_id = $1 AND e.active = true`

	fetchDueEventsQuery = `
		SELECT ev.event_id, ev.endpoint_id, ev.transaction_id, e.url, ev.payload, ev.attempts, ev.created_at
		FROM webhook_events ev
		JOIN webhook_endpoints e ON e.endpoint_id = ev.endpoint_id
		WHERE ev.status = 'pending'
		  AND e.active = true
		  AND (ev.next_retry_at IS NULL OR ev.next_retry_at <= $1)
		ORDER BY ev.created_at ASC
		LIMIT $2`

	markEventDeliveredQuery = `
		UPDATE webhook_events
		SET status = 'delivered', next_retry_at = NULL, last_error = NULL, updated_at = $2
		WHERE event_id = $1 AND status = 'pending'`

	markEventFailedQuery = `
		UPDATE webhook_events
		SET status = $2, attempts = $3, next_retry_at = $4, last_error = $5, updated_at = $6
		WHERE event_id = $1 AND status = 'pending'`

	listEventsByEndpointQuery = `
		SELECT event_id, endpoint_id, transaction_id, payload, status, attempts, next_retry_at, last_error, created_at, updated_at
		FROM webhook_events
		WHERE endpoint_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
)

// SaveEndpoint inserts a new webhook endpoint.
func (r *PgxWebhookRepository) SaveEndpoint(ctx context.Context, endpoint domain.WebhookEndpoint) error {
	m := mapping.ToModelWebhookEndpoint(endpoint)
	_, err := r.Pool.Exec(ctx, insertEndpointQuery, m.EndpointID, m.BusinessID, m.URL, m.Active, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: webhook endpoint %s", apperrors.ErrDuplicate, m.EndpointID)
		}
		return fmt.Errorf("failed to save webhook endpoint: %w", err)
	}
	return nil
}

// FindEndpointsByBusiness lists every endpoint of the business, active or not.
func (r *PgxWebhookRepository) FindEndpointsByBusiness(ctx context.Context, businessID string) ([]domain.WebhookEndpoint, error) {
	rows, err := r.Pool.Query(ctx, findEndpointsByBusinessQuery, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook endpoints: %w", err)
	}
	defer rows.Close()

	endpoints := []domain.WebhookEndpoint{}
	for rows.Next() {
		m, err := scanEndpoint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan webhook endpoint row: %w", err)
		}
		endpoints = append(endpoints, mapping.ToDomainWebhookEndpoint(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating webhook endpoint rows: %w", err)
	}
	return endpoints, nil
}

// FindEndpointByID retrieves one endpoint of the business.
func (r *PgxWebhookRepository) FindEndpointByID(ctx context.Context, businessID string, endpointID string) (*domain.WebhookEndpoint, error) {
	m, err := scanEndpoint(r.Pool.QueryRow(ctx, findEndpointByIDQuery, businessID, endpointID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find webhook endpoint %s: %w", endpointID, err)
	}
	endpoint := mapping.ToDomainWebhookEndpoint(*m)
	return &endpoint, nil
}

// DeactivateEndpoint soft-deletes an endpoint. Its pending events stop being fetched.
func (r *PgxWebhookRepository) DeactivateEndpoint(ctx context.Context, businessID string, endpointID string) error {
	tag, err := r.Pool.Exec(ctx, deactivateEndpointQuery, businessID, endpointID)
	if err != nil {
		return fmt.Errorf("failed to deactivate webhook endpoint %s: %w", endpointID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// EnqueueEventsInTx fans the payload out to the business's active endpoints.
func (r *PgxWebhookRepository) EnqueueEventsInTx(ctx context.Context, tx pgx.Tx, businessID string, transactionID string, payload []byte, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, enqueueEventsQuery, businessID, transactionID, payload, now)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue webhook events for transaction %s: %w", transactionID, err)
	}
	return tag.RowsAffected(), nil
}

// FetchDueEvents returns up to limit deliverable events, oldest first.
func (r *PgxWebhookRepository) FetchDueEvents(ctx context.Context, now time.Time, limit int) ([]domain.DueWebhookEvent, error) {
	rows, err := r.Pool.Query(ctx, fetchDueEventsQuery, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due webhook events: %w", err)
	}
	defer rows.Close()

	due := make([]domain.DueWebhookEvent, 0, limit)
	for rows.Next() {
		var ev domain.DueWebhookEvent
		if err := rows.Scan(
			&ev.EventID,
			&ev.EndpointID,
			&ev.TransactionID,
			&ev.URL,
			&ev.Payload,
			&ev.Attempts,
			&ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan due webhook event: %w", err)
		}
		due = append(due, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due webhook events: %w", err)
	}
	return due, nil
}

// MarkEventDelivered moves a pending event to delivered.
func (r *PgxWebhookRepository) MarkEventDelivered(ctx context.Context, eventID string, now time.Time) error {
	if _, err := r.Pool.Exec(ctx, markEventDeliveredQuery, eventID, now); err != nil {
		return fmt.Errorf("failed to mark webhook event %s delivered: %w", eventID, err)
	}
	return nil
}

// MarkEventFailed records a failed attempt, either rescheduling or terminating the event.
func (r *PgxWebhookRepository) MarkEventFailed(ctx context.Context, eventID string, attempts int, nextRetryAt *time.Time, terminal bool, lastError string, now time.Time) error {
	status := domain.WebhookEventPending
	if terminal {
		status = domain.WebhookEventFailed
		nextRetryAt = nil
	}
	lastError = domain.SanitizeLastError(lastError, domain.MaxLastErrorLength)
	if _, err := r.Pool.Exec(ctx, markEventFailedQuery, eventID, string(status), attempts, nextRetryAt, lastError, now); err != nil {
		return fmt.Errorf("failed to record failed attempt for webhook event %s: %w", eventID, err)
	}
	return nil
}

// ListEventsByEndpoint returns the newest outbox rows of an endpoint.
func (r *PgxWebhookRepository) ListEventsByEndpoint(ctx context.Context, endpointID string, limit int) ([]domain.WebhookEvent, error) {
	rows, err := r.Pool.Query(ctx, listEventsByEndpointQuery, endpointID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.WebhookEvent, 0, limit)
	for rows.Next() {
		var m models.WebhookEvent
		if err := rows.Scan(
			&m.EventID,
			&m.EndpointID,
			&m.TransactionID,
			&m.Payload,
			&m.Status,
			&m.Attempts,
			&m.NextRetryAt,
			&m.LastError,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan webhook event row: %w", err)
		}
		events = append(events, mapping.ToDomainWebhookEvent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating webhook event rows: %w", err)
	}
	return events, nil
}

func scanEndpoint(row pgx.Row) (*models.WebhookEndpoint, error) {
	var m models.WebhookEndpoint
	if err := row.Scan(&m.EndpointID, &m.BusinessID, &m.URL, &m.Active, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
