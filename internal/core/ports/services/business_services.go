package services

import (
	"context"

	"github.com/SscSPs/money_ledger/internal/core/domain"
)

// BusinessSvcFacade manages tenants.
type BusinessSvcFacade interface {
	CreateBusiness(ctx context.Context, name string) (*domain.Business, error)
	GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
}
