package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_ledger/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// webhookService is the outbox enqueuer plus endpoint management.
type webhookService struct {
	BaseService
	webhookRepo portsrepo.WebhookRepositoryFacade
	now         func() time.Time
}

// WebhookServiceOption is a functional option for configuring the webhook service
type WebhookServiceOption func(*webhookService)

// WithWebhookClock overrides the time source used for payload timestamps.
func WithWebhookClock(now func() time.Time) WebhookServiceOption {
	return func(s *webhookService) {
		s.now = now
	}
}

// NewWebhookService creates a new webhook service with the provided options
func NewWebhookService(repo portsrepo.WebhookRepositoryFacade, options ...WebhookServiceOption) portssvc.WebhookSvcFacade {
	svc := &webhookService{
		webhookRepo: repo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WebhookSvcFacade = (*webhookService)(nil)

// EnqueueTransactionCreated freezes the payload now and writes one pending event per
// active endpoint inside tx.
func (s *webhookService) EnqueueTransactionCreated(ctx context.Context, tx pgx.Tx, businessID string, txn domain.Transaction) (int64, error) {
	now := s.now().UTC()
	payload, err := json.Marshal(domain.NewTransactionEvent(txn, now))
	if err != nil {
		return 0, apperrors.Internal("failed to serialize webhook payload", err)
	}

	n, err := s.webhookRepo.EnqueueEventsInTx(ctx, tx, businessID, txn.TransactionID, payload, now)
	if err != nil {
		return 0, apperrors.Internal("failed to enqueue webhook events", err)
	}
	s.LogDebug(ctx, "Webhook events enqueued", slog.String("transaction_id", txn.TransactionID), slog.Int64("count", n))
	return n, nil
}

func (s *webhookService) CreateEndpoint(ctx context.Context, businessID string, url string) (*domain.WebhookEndpoint, error) {
	u, err := domain.ValidateEndpointURL(url)
	if err != nil {
		return nil, err
	}
	endpoint := domain.WebhookEndpoint{
		EndpointID: uuid.NewString(),
		BusinessID: businessID,
		URL:        u,
		Active:     true,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.webhookRepo.SaveEndpoint(ctx, endpoint); err != nil {
		s.LogError(ctx, err, "Failed to save webhook endpoint", slog.String("business_id", businessID))
		return nil, asInternal("failed to create webhook endpoint", err)
	}
	s.LogInfo(ctx, "Webhook endpoint created", slog.String("endpoint_id", endpoint.EndpointID))
	return &endpoint, nil
}

func (s *webhookService) ListEndpoints(ctx context.Context, businessID string) ([]domain.WebhookEndpoint, error) {
	endpoints, err := s.webhookRepo.FindEndpointsByBusiness(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list webhook endpoints", slog.String("business_id", businessID))
		return nil, apperrors.Internal("failed to list webhook endpoints", err)
	}
	if endpoints == nil {
		return []domain.WebhookEndpoint{}, nil
	}
	return endpoints, nil
}

// DeactivateEndpoint stops future enqueues and deliveries for the endpoint.
func (s *webhookService) DeactivateEndpoint(ctx context.Context, businessID string, endpointID string) error {
	id, err := parseID(endpointID, "webhook id")
	if err != nil {
		return err
	}
	if err := s.webhookRepo.DeactivateEndpoint(ctx, businessID, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("webhook endpoint")
		}
		s.LogError(ctx, err, "Failed to deactivate webhook endpoint", slog.String("endpoint_id", id))
		return apperrors.Internal("failed to deactivate webhook endpoint", err)
	}
	s.LogInfo(ctx, "Webhook endpoint deactivated", slog.String("endpoint_id", id))
	return nil
}

// ListEndpointEvents shows recent outbox rows of an endpoint owned by the business.
func (s *webhookService) ListEndpointEvents(ctx context.Context, businessID string, endpointID string, limit int) ([]domain.WebhookEvent, error) {
	id, err := parseID(endpointID, "webhook id")
	if err != nil {
		return nil, err
	}
	if _, err := s.webhookRepo.FindEndpointByID(ctx, businessID, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("webhook endpoint")
		}
		return nil, apperrors.Internal("failed to find webhook endpoint", err)
	}

	events, err := s.webhookRepo.ListEventsByEndpoint(ctx, id, clampLimit(limit, defaultListLimit, maxListLimit))
	if err != nil {
		s.LogError(ctx, err, "Failed to list webhook events", slog.String("endpoint_id", id))
		return nil, apperrors.Internal("failed to list webhook events", err)
	}
	if events == nil {
		return []domain.WebhookEvent{}, nil
	}
	return events, nil
}
