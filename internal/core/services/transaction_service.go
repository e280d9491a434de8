package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_ledger/internal/core/ports/services"
	"github.com/SscSPs/money_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// transactionService is the ledger engine. Every movement runs in one database
// transaction: lock accounts, check, update balances, append the log row, enqueue
// webhook events, commit.
type transactionService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	outbox          portssvc.OutboxEnqueuerSvc
}

// NewTransactionService creates the ledger engine.
func NewTransactionService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	outbox portssvc.OutboxEnqueuerSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		outbox:          outbox,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction applies one credit, debit or transfer.
func (s *transactionService) CreateTransaction(ctx context.Context, businessID string, req domain.CreateTransactionRequest) (*domain.Transaction, error) {
	logAttrs := []any{slog.String("business_id", businessID), slog.String("type", string(req.Type))}

	req, err := req.Validate()
	if err != nil {
		s.LogWarn(ctx, "Transaction rejected", append(logAttrs, slog.String("reason", err.Error()))...)
		return nil, err
	}

	txn, err := s.apply(ctx, businessID, req)
	if err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.KindInternal:
			s.LogError(ctx, err, "Transaction failed", logAttrs...)
		default:
			s.LogWarn(ctx, "Transaction rejected", append(logAttrs, slog.String("reason", err.Error()))...)
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction committed",
		append(logAttrs, slog.String("transaction_id", txn.TransactionID), slog.Int64("amount", txn.Amount))...)
	return txn, nil
}

func (s *transactionService) apply(ctx context.Context, businessID string, req domain.CreateTransactionRequest) (*domain.Transaction, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, asInternal("failed to begin transaction", err)
	}
	// No-op once committed.
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	switch req.Type {
	case domain.Credit:
		dest, err := s.lockAccount(ctx, tx, businessID, *req.DestAccountID)
		if err != nil {
			return nil, err
		}
		newBalance, err := domain.AddBalance(dest.Balance, req.Amount)
		if err != nil {
			return nil, err
		}
		if err := s.writeBalance(ctx, tx, dest.AccountID, newBalance); err != nil {
			return nil, err
		}

	case domain.Debit:
		source, err := s.lockAccount(ctx, tx, businessID, *req.SourceAccountID)
		if err != nil {
			return nil, err
		}
		if source.Balance < req.Amount {
			return nil, apperrors.InsufficientFunds()
		}
		newBalance, err := domain.SubBalance(source.Balance, req.Amount)
		if err != nil {
			return nil, err
		}
		if err := s.writeBalance(ctx, tx, source.AccountID, newBalance); err != nil {
			return nil, err
		}

	case domain.Transfer:
		// Lock in UUID byte order regardless of role so concurrent opposite
		// transfers cannot deadlock.
		firstID, secondID := domain.OrderAccountIDs(*req.SourceAccountID, *req.DestAccountID)
		first, err := s.lockAccount(ctx, tx, businessID, firstID)
		if err != nil {
			return nil, err
		}
		second, err := s.lockAccount(ctx, tx, businessID, secondID)
		if err != nil {
			return nil, err
		}
		source, dest := first, second
		if first.AccountID != *req.SourceAccountID {
			source, dest = second, first
		}

		if source.Currency != dest.Currency {
			return nil, apperrors.BadRequest("transfer requires source and destination accounts to have same currency")
		}
		if source.Balance < req.Amount {
			return nil, apperrors.InsufficientFunds()
		}
		newSource, err := domain.SubBalance(source.Balance, req.Amount)
		if err != nil {
			return nil, err
		}
		newDest, err := domain.AddBalance(dest.Balance, req.Amount)
		if err != nil {
			return nil, err
		}
		if err := s.writeBalance(ctx, tx, source.AccountID, newSource); err != nil {
			return nil, err
		}
		if err := s.writeBalance(ctx, tx, dest.AccountID, newDest); err != nil {
			return nil, err
		}
	}

	txn := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		BusinessID:      businessID,
		Type:            req.Type,
		SourceAccountID: req.SourceAccountID,
		DestAccountID:   req.DestAccountID,
		Amount:          req.Amount,
	}
	if err := s.transactionRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, asInternal("failed to record transaction", err)
	}

	if _, err := s.outbox.EnqueueTransactionCreated(ctx, tx, businessID, *txn); err != nil {
		return nil, asInternal("failed to enqueue webhook events", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, asInternal("failed to commit transaction", err)
	}
	return txn, nil
}

func (s *transactionService) lockAccount(ctx context.Context, tx pgx.Tx, businessID, accountID string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountForUpdateInTx(ctx, tx, businessID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("account")
		}
		return nil, asInternal("failed to lock account", err)
	}
	return acc, nil
}

func (s *transactionService) writeBalance(ctx context.Context, tx pgx.Tx, accountID string, balance int64) error {
	if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, accountID, balance); err != nil {
		return apperrors.Internal("failed to update balance", err)
	}
	return nil
}

// GetTransactionByID retrieves one transaction of the business.
func (s *transactionService) GetTransactionByID(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error) {
	id, err := parseID(transactionID, "transaction id")
	if err != nil {
		return nil, err
	}
	txn, err := s.transactionRepo.FindTransactionByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("transaction")
		}
		s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", id))
		return nil, apperrors.Internal("failed to get transaction", err)
	}
	return txn, nil
}

// ListTransactions returns a page of the business's transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, businessID string, limit int, nextToken string) ([]domain.Transaction, string, error) {
	limit = clampLimit(limit, defaultListLimit, maxListLimit)

	var cursor *pagination.Cursor
	if nextToken != "" {
		c, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", apperrors.BadRequest("invalid next_token")
		}
		cursor = c
	}

	// One extra row tells us whether another page exists.
	txns, err := s.transactionRepo.ListTransactions(ctx, businessID, limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("business_id", businessID))
		return nil, "", apperrors.Internal("failed to list transactions", err)
	}

	next := ""
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		next = pagination.EncodeToken(last.CreatedAt, last.TransactionID)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}
