package pgsql

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/SscSPs/money_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/suite"
)

const (
	testBusinessID = "3d8b5e2a-1c4f-4b6a-9e7d-0a1b2c3d4e5f"
	testAccountID  = "9a7c1e2b-3d4f-4a5b-8c6d-7e8f9a0b1c2d"
	testAccount2ID = "1b2c3d4e-5f6a-4b7c-8d9e-0f1a2b3c4d5e"
	testTxnID      = "5e6f7a8b-9c0d-4e1f-a2b3-c4d5e6f7a8b9"
	testEndpointID = "7f8e9d0c-1b2a-4938-8776-655443322110"
	testEventID    = "0c1d2e3f-4a5b-4c6d-9e7f-8091a2b3c4d5"
)

var accountColumns = []string{"account_id", "business_id", "name", "currency", "balance", "created_at"}

type RepositoryTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	ctx  context.Context
	now  time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	m, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.mock = m
	s.ctx = context.Background()
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.Require().NoError(s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func (s *RepositoryTestSuite) TestSaveAccount_DuplicateNameIsConflict() {
	repo := newPgxAccountRepository(s.mock)
	acc := domain.Account{AccountID: testAccountID, BusinessID: testBusinessID, Name: "Operating", Currency: "USD", CreatedAt: s.now}

	s.mock.ExpectExec("INSERT INTO accounts").
		WithArgs(testAccountID, testBusinessID, "Operating", "USD", int64(0), s.now).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.SaveAccount(s.ctx, acc)
	s.Require().Error(err)
	s.Equal(apperrors.KindConflict, apperrors.KindOf(err))
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *RepositoryTestSuite) TestFindAccountByID_ScopedToBusiness() {
	repo := newPgxAccountRepository(s.mock)

	s.mock.ExpectQuery("FROM accounts").
		WithArgs(testBusinessID, testAccountID).
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow(testAccountID, testBusinessID, "Operating", "USD", int64(1500), s.now))

	acc, err := repo.FindAccountByID(s.ctx, testBusinessID, testAccountID)
	s.Require().NoError(err)
	s.Equal(int64(1500), acc.Balance)
	s.Equal("USD", acc.Currency)
}

func (s *RepositoryTestSuite) TestFindAccountByID_NotFound() {
	repo := newPgxAccountRepository(s.mock)

	s.mock.ExpectQuery("FROM accounts").
		WithArgs(testBusinessID, testAccountID).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindAccountByID(s.ctx, testBusinessID, testAccountID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestFindAccountForUpdateInTx_LocksRow() {
	repo := newPgxAccountRepository(s.mock)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery("FOR UPDATE").
		WithArgs(testBusinessID, testAccountID).
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow(testAccountID, testBusinessID, "Operating", "USD", int64(700), s.now))
	s.mock.ExpectExec("UPDATE accounts SET balance").
		WithArgs(testAccountID, int64(400)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	s.mock.ExpectCommit()

	tx, err := repo.Begin(s.ctx)
	s.Require().NoError(err)

	acc, err := repo.FindAccountForUpdateInTx(s.ctx, tx, testBusinessID, testAccountID)
	s.Require().NoError(err)
	s.Equal(int64(700), acc.Balance)

	s.Require().NoError(repo.UpdateAccountBalanceInTx(s.ctx, tx, testAccountID, 400))
	s.Require().NoError(repo.Commit(s.ctx, tx))
}

func (s *RepositoryTestSuite) TestFindAccountForUpdateInTx_ForeignAccountIsNotFound() {
	repo := newPgxAccountRepository(s.mock)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery("FOR UPDATE").
		WithArgs(testBusinessID, testAccountID).
		WillReturnError(pgx.ErrNoRows)
	s.mock.ExpectRollback()

	tx, err := repo.Begin(s.ctx)
	s.Require().NoError(err)

	_, err = repo.FindAccountForUpdateInTx(s.ctx, tx, testBusinessID, testAccountID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Require().NoError(repo.Rollback(s.ctx, tx))
}

func (s *RepositoryTestSuite) TestSaveTransactionInTx_SetsCreatedAt() {
	repo := newPgxTransactionRepository(s.mock)
	src, dst := testAccountID, testAccount2ID
	txn := &domain.Transaction{
		TransactionID:   testTxnID,
		BusinessID:      testBusinessID,
		Type:            domain.Transfer,
		SourceAccountID: &src,
		DestAccountID:   &dst,
		Amount:          250,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(testTxnID, testBusinessID, "transfer", &src, &dst, int64(250)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(s.now))
	s.mock.ExpectCommit()

	tx, err := s.mock.Begin(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(repo.SaveTransactionInTx(s.ctx, tx, txn))
	s.Require().NoError(tx.Commit(s.ctx))
	s.Equal(s.now, txn.CreatedAt)
}

func (s *RepositoryTestSuite) TestListTransactions_UsesCursor() {
	repo := newPgxTransactionRepository(s.mock)
	src, dst := testAccountID, testAccount2ID
	cursor := &pagination.Cursor{CreatedAt: s.now, ID: testTxnID}

	s.mock.ExpectQuery("created_at, transaction_id\\) <").
		WithArgs(testBusinessID, s.now, testTxnID, 10).
		WillReturnRows(pgxmock.NewRows([]string{"transaction_id", "business_id", "type", "source_account_id", "dest_account_id", "amount", "created_at"}).
			AddRow(testEventID, testBusinessID, "transfer", &src, &dst, int64(99), s.now.Add(-time.Minute)))

	txns, err := repo.ListTransactions(s.ctx, testBusinessID, 10, cursor)
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.Equal(domain.Transfer, txns[0].Type)
	s.Equal(testAccountID, *txns[0].SourceAccountID)
}

func (s *RepositoryTestSuite) TestEnqueueEventsInTx_ReturnsRowCount() {
	repo := newPgxWebhookRepository(s.mock)
	payload := []byte(`{"event_type":"transaction.created"}`)

	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO webhook_events").
		WithArgs(testBusinessID, testTxnID, payload, s.now).
		WillReturnResult(pgxmock.NewResult("INSERT", 3))
	s.mock.ExpectCommit()

	tx, err := s.mock.Begin(s.ctx)
	s.Require().NoError(err)
	n, err := repo.EnqueueEventsInTx(s.ctx, tx, testBusinessID, testTxnID, payload, s.now)
	s.Require().NoError(err)
	s.Equal(int64(3), n)
	s.Require().NoError(tx.Commit(s.ctx))
}

func (s *RepositoryTestSuite) TestEnqueueEventsInTx_NoEndpoints() {
	repo := newPgxWebhookRepository(s.mock)

	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO webhook_events").
		WithArgs(testBusinessID, testTxnID, pgxmock.AnyArg(), s.now).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	s.mock.ExpectRollback()

	tx, err := s.mock.Begin(s.ctx)
	s.Require().NoError(err)
	n, err := repo.EnqueueEventsInTx(s.ctx, tx, testBusinessID, testTxnID, []byte(`{}`), s.now)
	s.Require().NoError(err)
	s.Zero(n)
	s.Require().NoError(tx.Rollback(s.ctx))
}

func (s *RepositoryTestSuite) TestFetchDueEvents() {
	repo := newPgxWebhookRepository(s.mock)

	s.mock.ExpectQuery("FROM webhook_events ev").
		WithArgs(s.now, 25).
		WillReturnRows(pgxmock.NewRows([]string{"event_id", "endpoint_id", "transaction_id", "url", "payload", "attempts", "created_at"}).
			AddRow(testEventID, testEndpointID, testTxnID, "https://hooks.example.com", []byte(`{}`), 2, s.now.Add(-time.Hour)))

	due, err := repo.FetchDueEvents(s.ctx, s.now, 25)
	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.Equal("https://hooks.example.com", due[0].URL)
	s.Equal(2, due[0].Attempts)
}

func (s *RepositoryTestSuite) TestListEventsByEndpoint() {
	repo := newPgxWebhookRepository(s.mock)
	retry := s.now.Add(20 * time.Second)
	lastErr := "status 502"

	s.mock.ExpectQuery("FROM webhook_events").
		WithArgs(testEndpointID, 10).
		WillReturnRows(pgxmock.NewRows([]string{"event_id", "endpoint_id", "transaction_id", "payload", "status", "attempts", "next_retry_at", "last_error", "created_at", "updated_at"}).
			AddRow(testEventID, testEndpointID, testTxnID, []byte(`{}`), "pending", 1, &retry, &lastErr, s.now.Add(-time.Minute), s.now))

	events, err := repo.ListEventsByEndpoint(s.ctx, testEndpointID, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(domain.WebhookEventPending, events[0].Status)
	s.Equal(1, events[0].Attempts)
	s.Require().NotNil(events[0].NextRetryAt)
	s.True(retry.Equal(*events[0].NextRetryAt))
	s.Require().NotNil(events[0].LastError)
	s.Equal(lastErr, *events[0].LastError)
}

func (s *RepositoryTestSuite) TestMarkEventFailed_TerminalClearsRetry() {
	repo := newPgxWebhookRepository(s.mock)
	retry := s.now.Add(time.Minute)

	s.mock.ExpectExec("UPDATE webhook_events").
		WithArgs(testEventID, "failed", 5, pgxmock.AnyArg(), "status 500", s.now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	s.Require().NoError(repo.MarkEventFailed(s.ctx, testEventID, 5, &retry, true, "status 500", s.now))
}

func (s *RepositoryTestSuite) TestMarkEventFailed_Reschedules() {
	repo := newPgxWebhookRepository(s.mock)
	retry := s.now.Add(20 * time.Second)

	s.mock.ExpectExec("UPDATE webhook_events").
		WithArgs(testEventID, "pending", 2, &retry, "timeout", s.now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	s.Require().NoError(repo.MarkEventFailed(s.ctx, testEventID, 2, &retry, false, "timeout", s.now))
}

// storableText matches arguments Postgres accepts in a TEXT column of bounded length.
type storableText struct{ max int }

func (m storableText) Match(v interface{}) bool {
	str, ok := v.(string)
	return ok && utf8.ValidString(str) && !strings.ContainsRune(str, 0) && len(str) <= m.max
}

func (s *RepositoryTestSuite) TestMarkEventFailed_StoresValidUTF8() {
	repo := newPgxWebhookRepository(s.mock)
	retry := s.now.Add(20 * time.Second)
	raw := "webhook endpoint returned status 502: \x1f\x8b\x08\x00" + strings.Repeat("é", domain.MaxLastErrorLength)

	s.mock.ExpectExec("UPDATE webhook_events").
		WithArgs(testEventID, "pending", 1, &retry, storableText{max: domain.MaxLastErrorLength}, s.now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	s.Require().NoError(repo.MarkEventFailed(s.ctx, testEventID, 1, &retry, false, raw, s.now))
}

func (s *RepositoryTestSuite) TestDeactivateEndpoint_Foreign() {
	repo := newPgxWebhookRepository(s.mock)

	s.mock.ExpectExec("UPDATE webhook_endpoints SET active = false").
		WithArgs(testBusinessID, testEndpointID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.DeactivateEndpoint(s.ctx, testBusinessID, testEndpointID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestAPIKey_FindActiveByHash() {
	repo := newPgxAPIKeyRepository(s.mock)

	s.mock.ExpectQuery("revoked_at IS NULL").
		WithArgs("abc123").
		WillReturnRows(pgxmock.NewRows([]string{"api_key_id", "business_id", "key_hash", "revoked_at", "created_at"}).
			AddRow(testEventID, testBusinessID, "abc123", (*time.Time)(nil), s.now))

	key, err := repo.FindActiveByHash(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal(testBusinessID, key.BusinessID)
	s.False(key.IsRevoked())
}

func (s *RepositoryTestSuite) TestAPIKey_RevokeTwiceIsNotFound() {
	repo := newPgxAPIKeyRepository(s.mock)

	s.mock.ExpectExec("UPDATE api_keys").
		WithArgs(testEventID, s.now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	s.ErrorIs(repo.Revoke(s.ctx, testEventID, s.now), apperrors.ErrNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
