package handlers_test

import (
	"context"

	"github.com/SscSPs/money_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/money_ledger/internal/core/ports/services"
	"github.com/SscSPs/money_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, businessID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, businessID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, businessID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, businessID string, req domain.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, businessID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, businessID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, businessID string, limit int, nextToken string) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, businessID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.String(1), args.Error(2)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock WebhookService ---
type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) EnqueueTransactionCreated(ctx context.Context, tx pgx.Tx, businessID string, txn domain.Transaction) (int64, error) {
	args := m.Called(ctx, tx, businessID, txn)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWebhookService) CreateEndpoint(ctx context.Context, businessID string, url string) (*domain.WebhookEndpoint, error) {
	args := m.Called(ctx, businessID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebhookEndpoint), args.Error(1)
}

func (m *MockWebhookService) ListEndpoints(ctx context.Context, businessID string) ([]domain.WebhookEndpoint, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WebhookEndpoint), args.Error(1)
}

func (m *MockWebhookService) DeactivateEndpoint(ctx context.Context, businessID string, endpointID string) error {
	args := m.Called(ctx, businessID, endpointID)
	return args.Error(0)
}

func (m *MockWebhookService) ListEndpointEvents(ctx context.Context, businessID string, endpointID string, limit int) ([]domain.WebhookEvent, error) {
	args := m.Called(ctx, businessID, endpointID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WebhookEvent), args.Error(1)
}

var _ portssvc.WebhookSvcFacade = (*MockWebhookService)(nil)

// --- Mock APIKeyService ---
type MockAPIKeyService struct {
	mock.Mock
}

func (m *MockAPIKeyService) Authenticate(ctx context.Context, rawKey string) (*domain.BusinessContext, error) {
	args := m.Called(ctx, rawKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessContext), args.Error(1)
}

func (m *MockAPIKeyService) CreateAPIKey(ctx context.Context, businessID string) (string, *domain.APIKey, error) {
	args := m.Called(ctx, businessID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.APIKey), args.Error(2)
}

func (m *MockAPIKeyService) RevokeAPIKey(ctx context.Context, apiKeyID string) error {
	args := m.Called(ctx, apiKeyID)
	return args.Error(0)
}

var _ portssvc.APIKeySvcFacade = (*MockAPIKeyService)(nil)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }
