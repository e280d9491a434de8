package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/money_ledger/internal/models"
	"github.com/SscSPs/money_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxBusinessRepository struct {
	BaseRepository
}

func newPgxBusinessRepository(pool DBPool) *PgxBusinessRepository {
	return &PgxBusinessRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BusinessRepository = (*PgxBusinessRepository)(nil)

func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO businesses (business_id, name, created_at) VALUES ($1, $2, $3)`,
		business.BusinessID, business.Name, business.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: business %s", apperrors.ErrDuplicate, business.BusinessID)
		}
		return fmt.Errorf("failed to save business: %w", err)
	}
	return nil
}

func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	var m models.Business
	err := r.Pool.QueryRow(ctx,
		`SELECT business_id, name, created_at FROM businesses WHERE business_id = $1`,
		businessID).Scan(&m.BusinessID, &m.Name, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business %s: %w", businessID, err)
	}
	b := mapping.ToDomainBusiness(m)
	return &b, nil
}
