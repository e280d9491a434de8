package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

const maxBusinessNameLength = 128

type businessService struct {
	BaseService
	businessRepo portsrepo.BusinessRepository
	now          func() time.Time
}

func NewBusinessService(repo portsrepo.BusinessRepository) portssvc.BusinessSvcFacade {
	return &businessService{businessRepo: repo, now: time.Now}
}

func (s *businessService) CreateBusiness(ctx context.Context, name string) (*domain.Business, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxBusinessNameLength {
		return nil, apperrors.BadRequest("name is required (1-128 chars)")
	}
	business := domain.Business{
		BusinessID: uuid.NewString(),
		Name:       name,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.businessRepo.SaveBusiness(ctx, business); err != nil {
		return nil, asInternal("failed to create business", err)
	}
	s.LogInfo(ctx, "Business created", slog.String("business_id", business.BusinessID))
	return &business, nil
}

func (s *businessService) GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	id, err := parseID(businessID, "business id")
	if err != nil {
		return nil, err
	}
	b, err := s.businessRepo.FindBusinessByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("business")
		}
		return nil, apperrors.Internal("failed to get business", err)
	}
	return b, nil
}
