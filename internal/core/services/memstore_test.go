package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/SscSPs/money_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memStore is an in-memory stand-in for Postgres with row locks held until
// commit or rollback, used to exercise the ledger engine under concurrency.
type memStore struct {
	mu        sync.Mutex
	accounts  map[string]*memRow
	txns      []domain.Transaction
	endpoints []domain.WebhookEndpoint
	events    []domain.WebhookEvent
}

type memRow struct {
	lock sync.Mutex
	acc  domain.Account
}

type memTx struct {
	pgx.Tx
	held    []*memRow
	undo    map[string]int64
	txns    []domain.Transaction
	events  []domain.WebhookEvent
	done    bool
	aborted bool
}

func newMemStore() *memStore {
	return &memStore{accounts: map[string]*memRow{}}
}

func (s *memStore) addAccount(businessID, currency string, balance int64) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[id] = &memRow{acc: domain.Account{
		AccountID: id, BusinessID: businessID, Name: id, Currency: currency, Balance: balance,
	}}
	return id
}

func (s *memStore) addEndpoint(businessID, url string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoints = append(s.endpoints, domain.WebhookEndpoint{
		EndpointID: uuid.NewString(), BusinessID: businessID, URL: url, Active: active,
	})
}

func (s *memStore) balance(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id].acc.Balance
}

// --- TransactionManager ---

func (s *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{undo: map[string]int64{}}, nil
}

func (s *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	t := tx.(*memTx)
	s.mu.Lock()
	s.txns = append(s.txns, t.txns...)
	s.events = append(s.events, t.events...)
	s.mu.Unlock()
	s.release(t)
	return nil
}

func (s *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	t := tx.(*memTx)
	if t.done {
		return nil
	}
	s.mu.Lock()
	for id, bal := range t.undo {
		s.accounts[id].acc.Balance = bal
	}
	s.mu.Unlock()
	t.aborted = true
	s.release(t)
	return nil
}

func (s *memStore) release(t *memTx) {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].lock.Unlock()
	}
	t.held = nil
	t.done = true
}

// --- AccountRepositoryFacade ---

func (s *memStore) FindAccountByID(ctx context.Context, businessID string, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.accounts[accountID]
	if !ok || row.acc.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	acc := row.acc
	return &acc, nil
}

func (s *memStore) ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error) {
	return nil, nil
}

func (s *memStore) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountID] = &memRow{acc: account}
	return nil
}

func (s *memStore) FindAccountForUpdateInTx(ctx context.Context, tx pgx.Tx, businessID string, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	row, ok := s.accounts[accountID]
	s.mu.Unlock()
	if !ok || row.acc.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}

	row.lock.Lock()
	t := tx.(*memTx)
	t.held = append(t.held, row)

	s.mu.Lock()
	acc := row.acc
	s.mu.Unlock()
	return &acc, nil
}

func (s *memStore) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance int64) error {
	t := tx.(*memTx)
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.accounts[accountID]
	if _, seen := t.undo[accountID]; !seen {
		t.undo[accountID] = row.acc.Balance
	}
	row.acc.Balance = newBalance
	return nil
}

// --- TransactionRepositoryFacade ---

func (s *memStore) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	txn.CreatedAt = time.Now().UTC()
	t := tx.(*memTx)
	t.txns = append(t.txns, *txn)
	return nil
}

func (s *memStore) FindTransactionByID(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, txn := range s.txns {
		if txn.TransactionID == transactionID && txn.BusinessID == businessID {
			t := txn
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) ListTransactions(ctx context.Context, businessID string, limit int, cursor *pagination.Cursor) ([]domain.Transaction, error) {
	return nil, nil
}

// memWebhookRepo implements the outbox side on top of memStore.
type memWebhookRepo struct {
	*memStore
}

func (r memWebhookRepo) SaveEndpoint(ctx context.Context, endpoint domain.WebhookEndpoint) error {
	r.addEndpoint(endpoint.BusinessID, endpoint.URL, endpoint.Active)
	return nil
}

func (r memWebhookRepo) FindEndpointsByBusiness(ctx context.Context, businessID string) ([]domain.WebhookEndpoint, error) {
	return nil, nil
}

func (r memWebhookRepo) FindEndpointByID(ctx context.Context, businessID string, endpointID string) (*domain.WebhookEndpoint, error) {
	return nil, apperrors.ErrNotFound
}

func (r memWebhookRepo) DeactivateEndpoint(ctx context.Context, businessID string, endpointID string) error {
	return nil
}

func (r memWebhookRepo) EnqueueEventsInTx(ctx context.Context, tx pgx.Tx, businessID string, transactionID string, payload []byte, now time.Time) (int64, error) {
	t := tx.(*memTx)
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.endpoints {
		if e.BusinessID != businessID || !e.Active {
			continue
		}
		t.events = append(t.events, domain.WebhookEvent{
			EventID:       uuid.NewString(),
			EndpointID:    e.EndpointID,
			TransactionID: transactionID,
			Payload:       append([]byte(nil), payload...),
			Status:        domain.WebhookEventPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		n++
	}
	return n, nil
}

func (r memWebhookRepo) FetchDueEvents(ctx context.Context, now time.Time, limit int) ([]domain.DueWebhookEvent, error) {
	return nil, nil
}

func (r memWebhookRepo) MarkEventDelivered(ctx context.Context, eventID string, now time.Time) error {
	return nil
}

func (r memWebhookRepo) MarkEventFailed(ctx context.Context, eventID string, attempts int, nextRetryAt *time.Time, terminal bool, lastError string, now time.Time) error {
	return nil
}

func (r memWebhookRepo) ListEventsByEndpoint(ctx context.Context, endpointID string, limit int) ([]domain.WebhookEvent, error) {
	return nil, nil
}
