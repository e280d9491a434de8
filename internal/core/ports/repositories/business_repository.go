package repositories

import (
	"context"

	"github.com/SscSPs/money_ledger/internal/core/domain"
)

// BusinessRepository persists tenants
type BusinessRepository interface {
	SaveBusiness(ctx context.Context, business domain.Business) error
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
}
