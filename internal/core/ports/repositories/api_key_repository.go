package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/money_ledger/internal/core/domain"
)

// APIKeyRepository defines the interface for API key data access operations
type APIKeyRepository interface {
	// Create persists a new API key. Only the hash is stored.
	Create(ctx context.Context, key *domain.APIKey) error

	// FindActiveByHash finds a non-revoked key by its hash (used for authentication)
	FindActiveByHash(ctx context.Context, keyHash string) (*domain.APIKey, error)

	// Revoke marks a key as revoked. Revoking twice yields apperrors.ErrNotFound.
	Revoke(ctx context.Context, apiKeyID string, now time.Time) error
}
