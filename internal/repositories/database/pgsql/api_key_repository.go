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

type PgxAPIKeyRepository struct {
	BaseRepository
}

// newPgxAPIKeyRepository creates a new instance of PgxAPIKeyRepository
func newPgxAPIKeyRepository(pool DBPool) *PgxAPIKeyRepository {
	return &PgxAPIKeyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.APIKeyRepository = (*PgxAPIKeyRepository)(nil)

const (
	apiKeysTable = "api_keys"

	selectAPIKeyFields = `api_key_id, business_id, key_hash, revoked_at, created_at`

	insertAPIKeyQuery = `
		INSERT INTO ` + apiKeysTable + ` (api_key_id, business_id, key_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	findActiveAPIKeyByHashQuery = `
		SELECT ` + selectAPIKeyFields + `
		FROM ` + apiKeysTable + `
		WHERE key_hash = $1 AND revoked_at IS NULL`

	revokeAPIKeyQuery = `
		UPDATE ` + apiKeysTable + `
		SET revoked_at = $2
		WHERE api_key_id = $1 AND revoked_at IS NULL`
)

// Create persists a new API key and fills CreatedAt.
func (r *PgxAPIKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	if key == nil {
		return errors.New("api key cannot be nil")
	}
	m := mapping.ToModelAPIKey(*key)
	err := r.Pool.QueryRow(ctx, insertAPIKeyQuery, m.APIKeyID, m.BusinessID, m.KeyHash).Scan(&key.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: api key hash collision", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

// FindActiveByHash finds a non-revoked key by its hash
func (r *PgxAPIKeyRepository) FindActiveByHash(ctx context.Context, keyHash string) (*domain.APIKey, error) {
	var m models.APIKey
	err := r.Pool.QueryRow(ctx, findActiveAPIKeyByHashQuery, keyHash).Scan(
		&m.APIKeyID,
		&m.BusinessID,
		&m.KeyHash,
		&m.RevokedAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}
	key := mapping.ToDomainAPIKey(m)
	return &key, nil
}

// Revoke marks a key as revoked
func (r *PgxAPIKeyRepository) Revoke(ctx context.Context, apiKeyID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, revokeAPIKeyQuery, apiKeyID, now)
	if err != nil {
		return fmt.Errorf("failed to revoke api key %s: %w", apiKeyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
