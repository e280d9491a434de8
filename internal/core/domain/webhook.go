package domain

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/money_ledger/internal/apperrors"
)

// WebhookEventStatus is the delivery state of an outbox row.
type WebhookEventStatus string

const (
	WebhookEventPending   WebhookEventStatus = "pending"
	WebhookEventDelivered WebhookEventStatus = "delivered"
	WebhookEventFailed    WebhookEventStatus = "failed"
)

// EventTypeTransactionCreated is the only event type emitted today.
const EventTypeTransactionCreated = "transaction.created"

const (
	backoffBaseSeconds = 5
	backoffMaxExponent = 10
	backoffCapSeconds  = 300
)

// MaxLastErrorLength bounds the failure text stored on an outbox row, in bytes.
const MaxLastErrorLength = 1024

// WebhookEndpoint is a subscriber URL. Endpoints are deactivated, never deleted.
type WebhookEndpoint struct {
	EndpointID string    `json:"id"`
	BusinessID string    `json:"business_id"`
	URL        string    `json:"url"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// WebhookEvent is one outbox row: a frozen payload bound for one endpoint.
type WebhookEvent struct {
	EventID       string             `json:"id"`
	EndpointID    string             `json:"endpoint_id"`
	TransactionID string             `json:"transaction_id"`
	Payload       []byte             `json:"payload"`
	Status        WebhookEventStatus `json:"status"`
	Attempts      int                `json:"attempts"`
	NextRetryAt   *time.Time         `json:"next_retry_at"`
	LastError     *string            `json:"last_error,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// DueWebhookEvent is a pending event joined with its endpoint URL, ready to send.
type DueWebhookEvent struct {
	EventID       string
	EndpointID    string
	TransactionID string
	URL           string
	Payload       []byte
	Attempts      int
	CreatedAt     time.Time
}

// TransactionEvent is the JSON document delivered to subscribers.
type TransactionEvent struct {
	EventType string               `json:"event_type"`
	Timestamp time.Time            `json:"timestamp"`
	Data      TransactionEventData `json:"data"`
}

// TransactionEventData snapshots the transaction at enqueue time.
type TransactionEventData struct {
	TransactionID   string          `json:"transaction_id"`
	Type            TransactionType `json:"type"`
	SourceAccountID *string         `json:"source_account_id"`
	DestAccountID   *string         `json:"dest_account_id"`
	Amount          int64           `json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewTransactionEvent builds the transaction.created payload for txn.
func NewTransactionEvent(txn Transaction, now time.Time) TransactionEvent {
	return TransactionEvent{
		EventType: EventTypeTransactionCreated,
		Timestamp: now.UTC(),
		Data: TransactionEventData{
			TransactionID:   txn.TransactionID,
			Type:            txn.Type,
			SourceAccountID: txn.SourceAccountID,
			DestAccountID:   txn.DestAccountID,
			Amount:          txn.Amount,
			CreatedAt:       txn.CreatedAt.UTC(),
		},
	}
}

// NextRetryDelay is the wait after the k-th failed attempt (k counted after increment):
// min(5 * 2^min(k,10), 300) seconds.
func NextRetryDelay(attempts int) time.Duration {
	k := attempts
	if k < 0 {
		k = 0
	}
	if k > backoffMaxExponent {
		k = backoffMaxExponent
	}
	seconds := backoffBaseSeconds * (1 << k)
	if seconds > backoffCapSeconds {
		seconds = backoffCapSeconds
	}
	return time.Duration(seconds) * time.Second
}

// ValidateEndpointURL requires an absolute http(s) URL with a host.
func ValidateEndpointURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", apperrors.BadRequest("url is required")
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return "", apperrors.BadRequest("url must start with http:// or https://")
	}
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return "", apperrors.BadRequest("url must be an absolute URL with a host")
	}
	return u, nil
}

// SanitizeLastError makes failure text storable in a Postgres TEXT column. Invalid
// UTF-8 becomes U+FFFD, NUL bytes are dropped and the result is cut to at most max
// bytes without splitting a rune. max <= 0 disables the cut.
func SanitizeLastError(s string, max int) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.ReplaceAll(s, "\x00", "")
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
