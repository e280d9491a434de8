package repositories

import (
	"context"

	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account owned by the business.
	FindAccountByID(ctx context.Context, businessID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a page of the business's accounts, oldest first.
	ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that run inside a caller-owned transaction
type AccountTransactionSupport interface {
	// FindAccountForUpdateInTx selects one account of the business and holds a row lock
	// on it until tx ends. A missing or foreign account yields apperrors.ErrNotFound.
	FindAccountForUpdateInTx(ctx context.Context, tx pgx.Tx, businessID string, accountID string) (*domain.Account, error)

	// UpdateAccountBalanceInTx writes the new balance of a locked account.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance int64) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
