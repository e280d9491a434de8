package repositories

import (
	"context"

	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/SscSPs/money_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for the transaction log
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns up to limit transactions newest first, strictly after cursor when set.
	ListTransactions(ctx context.Context, businessID string, limit int, cursor *pagination.Cursor) ([]domain.Transaction, error)
}

// TransactionWriter appends to the transaction log. Rows are never updated.
type TransactionWriter interface {
	// SaveTransactionInTx inserts txn and fills CreatedAt from the database clock.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-log repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
