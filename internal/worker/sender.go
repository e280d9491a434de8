package worker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SscSPs/money_ledger/internal/core/domain"
)

const (
	// DefaultUserAgent identifies deliveries to receivers.
	DefaultUserAgent = "money-ledger-webhooks/1.0"

	// EventIDHeader carries the outbox row ID so receivers can drop duplicates.
	EventIDHeader = "X-Webhook-Event-ID"

	maxErrorBodyBytes = 512
)

// Sender delivers one event. Any returned error counts as a failed attempt.
type Sender interface {
	Send(ctx context.Context, event domain.DueWebhookEvent) error
}

// HTTPSender POSTs the frozen payload to the endpoint URL.
type HTTPSender struct {
	client    *http.Client
	userAgent string
}

// NewHTTPSender builds a sender whose client always has a timeout.
func NewHTTPSender(timeout time.Duration) *HTTPSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSender{
		client:    &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
	}
}

// Send treats transport errors and non-2xx responses as failures.
func (s *HTTPSender) Send(ctx context.Context, event domain.DueWebhookEvent) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, event.URL, bytes.NewReader(event.Payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set(EventIDHeader, event.EventID)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		// Error bodies may be binary or cut mid-rune; the text ends up in last_error.
		excerpt := domain.SanitizeLastError(string(bytes.TrimSpace(body)), maxErrorBodyBytes)
		return fmt.Errorf("webhook endpoint returned status %d: %s", resp.StatusCode, excerpt)
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
