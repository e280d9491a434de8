package models

import "time"

// WebhookEndpoint is the webhook_endpoints table row.
type WebhookEndpoint struct {
	EndpointID string    `db:"endpoint_id"`
	BusinessID string    `db:"business_id"`
	URL        string    `db:"url"`
	Active     bool      `db:"active"`
	CreatedAt  time.Time `db:"created_at"`
}

// WebhookEvent is the webhook_events (outbox) table row.
type WebhookEvent struct {
	EventID       string     `db:"event_id"`
	EndpointID    string     `db:"endpoint_id"`
	TransactionID string     `db:"transaction_id"`
	Payload       []byte     `db:"payload"` // jsonb, frozen at enqueue time
	Status        string     `db:"status"`
	Attempts      int        `db:"attempts"`
	NextRetryAt   *time.Time `db:"next_retry_at"`
	LastError     *string    `db:"last_error"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}
