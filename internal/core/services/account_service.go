package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_ledger/internal/core/ports/services"
	"github.com/SscSPs/money_ledger/internal/dto"
	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// NewAccountService creates a new account service
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: repo,
		now:         time.Now,
	}
}

// CreateAccount validates and persists a new zero-balance account.
func (s *accountService) CreateAccount(ctx context.Context, businessID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	name, err := domain.NormalizeAccountName(req.Name)
	if err != nil {
		return nil, err
	}
	currency, err := domain.NormalizeCurrency(req.Currency)
	if err != nil {
		return nil, err
	}

	account := domain.Account{
		AccountID:  uuid.NewString(),
		BusinessID: businessID,
		Name:       name,
		Currency:   currency,
		Balance:    0,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save account in repository", slog.String("business_id", businessID))
		return nil, apperrors.Internal("failed to create account", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("currency", currency))
	return &account, nil
}

// GetAccountByID retrieves an account owned by the business.
func (s *accountService) GetAccountByID(ctx context.Context, businessID string, accountID string) (*domain.Account, error) {
	id, err := parseID(accountID, "account id")
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("account")
		}
		s.LogError(ctx, err, "Failed to find account by ID in repository", slog.String("account_id", id))
		return nil, apperrors.Internal("failed to get account", err)
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error) {
	limit = clampLimit(limit, defaultListLimit, maxListLimit)
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, businessID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts from repository", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, apperrors.Internal("failed to list accounts", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}
