package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/money_ledger/internal/models"
	"github.com/SscSPs/money_ledger/internal/utils/mapping"
	"github.com/SscSPs/money_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool DBPool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const (
	selectTransactionFields = `transaction_id, business_id, type, source_account_id, dest_account_id, amount, created_at`

	insertTransactionQuery = `
		INSERT INTO transactions (transaction_id, business_id, type, source_account_id, dest_account_id, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	findTransactionByIDQuery = `
		SELECT ` + selectTransactionFields + `
		FROM transactions
		WHERE business_id = $1 AND transaction_id = $2`

	listTransactionsQuery = `
		SELECT ` + selectTransactionFields + `
		FROM transactions
		WHERE business_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2`

	listTransactionsAfterQuery = `
		SELECT ` + selectTransactionFields + `
		FROM transactions
		WHERE business_id = $1 AND (created_at, transaction_id) < ($2, $3)
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $4`
)

// SaveTransactionInTx inserts the transaction and sets txn.CreatedAt from the database.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	m := mapping.ToModelTransaction(*txn)
	err := tx.QueryRow(ctx, insertTransactionQuery,
		m.TransactionID,
		m.BusinessID,
		m.Type,
		m.SourceAccountID,
		m.DestAccountID,
		m.Amount,
	).Scan(&txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves one transaction of the business.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx, findTransactionByIDQuery, businessID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// ListTransactions returns transactions newest first, continuing after cursor when given.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, businessID string, limit int, cursor *pagination.Cursor) ([]domain.Transaction, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if cursor == nil {
		rows, err = r.Pool.Query(ctx, listTransactionsQuery, businessID, limit)
	} else {
		rows, err = r.Pool.Query(ctx, listTransactionsAfterQuery, businessID, cursor.CreatedAt, cursor.ID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	if err := row.Scan(
		&m.TransactionID,
		&m.BusinessID,
		&m.Type,
		&m.SourceAccountID,
		&m.DestAccountID,
		&m.Amount,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
