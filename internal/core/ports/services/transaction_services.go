package services

import (
	"context"

	"github.com/SscSPs/money_ledger/internal/core/domain"
)

// LedgerEngineSvc applies money movements atomically.
type LedgerEngineSvc interface {
	// CreateTransaction validates req, locks the involved accounts, applies the
	// movement, records it and enqueues its webhook events in one commit.
	CreateTransaction(ctx context.Context, businessID string, req domain.CreateTransactionRequest) (*domain.Transaction, error)
}

// TransactionReaderSvc reads the immutable transaction log.
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns a page newest first and the token of the next page
	// ("" when there is none).
	ListTransactions(ctx context.Context, businessID string, limit int, nextToken string) ([]domain.Transaction, string, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	LedgerEngineSvc
	TransactionReaderSvc
}
