package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/money_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/money_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// stubTx stands in for a pgx.Tx when the repositories are mocked.
type stubTx struct {
	pgx.Tx
}

// --- Mock TransactionManager ---
type MockTxManager struct {
	mock.Mock
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, businessID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) FindAccountForUpdateInTx(ctx context.Context, tx pgx.Tx, businessID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, businessID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Copy so the engine cannot mutate fixtures shared across calls.
	acc := *args.Get(0).(*domain.Account)
	return &acc, args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance int64) error {
	return m.Called(ctx, tx, accountID, newBalance).Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, businessID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, businessID string, limit int, cursor *pagination.Cursor) ([]domain.Transaction, error) {
	args := m.Called(ctx, businessID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	return m.Called(ctx, tx, txn).Error(0)
}

// --- Mock WebhookRepository ---
type MockWebhookRepository struct {
	mock.Mock
}

var _ portsrepo.WebhookRepositoryFacade = (*MockWebhookRepository)(nil)

func (m *MockWebhookRepository) SaveEndpoint(ctx context.Context, endpoint domain.WebhookEndpoint) error {
	return m.Called(ctx, endpoint).Error(0)
}

func (m *MockWebhookRepository) FindEndpointsByBusiness(ctx context.Context, businessID string) ([]domain.WebhookEndpoint, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WebhookEndpoint), args.Error(1)
}

func (m *MockWebhookRepository) FindEndpointByID(ctx context.Context, businessID string, endpointID string) (*domain.WebhookEndpoint, error) {
	args := m.Called(ctx, businessID, endpointID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebhookEndpoint), args.Error(1)
}

func (m *MockWebhookRepository) DeactivateEndpoint(ctx context.Context, businessID string, endpointID string) error {
	return m.Called(ctx, businessID, endpointID).Error(0)
}

func (m *MockWebhookRepository) EnqueueEventsInTx(ctx context.Context, tx pgx.Tx, businessID string, transactionID string, payload []byte, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, businessID, transactionID, payload, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWebhookRepository) FetchDueEvents(ctx context.Context, now time.Time, limit int) ([]domain.DueWebhookEvent, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DueWebhookEvent), args.Error(1)
}

func (m *MockWebhookRepository) MarkEventDelivered(ctx context.Context, eventID string, now time.Time) error {
	return m.Called(ctx, eventID, now).Error(0)
}

func (m *MockWebhookRepository) MarkEventFailed(ctx context.Context, eventID string, attempts int, nextRetryAt *time.Time, terminal bool, lastError string, now time.Time) error {
	return m.Called(ctx, eventID, attempts, nextRetryAt, terminal, lastError, now).Error(0)
}

func (m *MockWebhookRepository) ListEventsByEndpoint(ctx context.Context, endpointID string, limit int) ([]domain.WebhookEvent, error) {
	args := m.Called(ctx, endpointID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WebhookEvent), args.Error(1)
}

// --- Mock OutboxEnqueuer ---
type MockOutboxEnqueuer struct {
	mock.Mock
}

func (m *MockOutboxEnqueuer) EnqueueTransactionCreated(ctx context.Context, tx pgx.Tx, businessID string, txn domain.Transaction) (int64, error) {
	args := m.Called(ctx, tx, businessID, txn)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock APIKeyRepository ---
type MockAPIKeyRepository struct {
	mock.Mock
}

var _ portsrepo.APIKeyRepository = (*MockAPIKeyRepository)(nil)

func (m *MockAPIKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockAPIKeyRepository) FindActiveByHash(ctx context.Context, keyHash string) (*domain.APIKey, error) {
	args := m.Called(ctx, keyHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) Revoke(ctx context.Context, apiKeyID string, now time.Time) error {
	return m.Called(ctx, apiKeyID, now).Error(0)
}

// --- Mock BusinessRepository ---
type MockBusinessRepository struct {
	mock.Mock
}

var _ portsrepo.BusinessRepository = (*MockBusinessRepository)(nil)

func (m *MockBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	return m.Called(ctx, business).Error(0)
}

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
