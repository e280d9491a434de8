package services

import (
	"context"

	"github.com/SscSPs/money_ledger/internal/core/domain"
)

// APIKeyAuthenticatorSvc resolves a raw API key to its business.
type APIKeyAuthenticatorSvc interface {
	// Authenticate returns apperrors.ErrUnauthorized for empty, unknown or revoked keys.
	Authenticate(ctx context.Context, rawKey string) (*domain.BusinessContext, error)
}

// APIKeyManagerSvc provisions and revokes keys.
type APIKeyManagerSvc interface {
	// CreateAPIKey returns the raw key, which is never stored and cannot be recovered.
	CreateAPIKey(ctx context.Context, businessID string) (string, *domain.APIKey, error)
	RevokeAPIKey(ctx context.Context, apiKeyID string) error
}

// APIKeySvcFacade combines all API key service interfaces
type APIKeySvcFacade interface {
	APIKeyAuthenticatorSvc
	APIKeyManagerSvc
}
