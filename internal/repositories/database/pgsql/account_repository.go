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
	"github.com/jackc/pgx/v5"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool DBPool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const (
	selectAccountFields = `account_id, business_id, name, currency, balance, created_at`

	insertAccountQuery = `
		INSERT INTO accounts (account_id, business_id, name, currency, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	findAccountByIDQuery = `
		SELECT ` + selectAccountFields + `
		FROM accounts
		WHERE business_id = $1 AND account_id = $2`

	listAccountsQuery = `
		SELECT ` + selectAccountFields + `
		FROM accounts
		WHERE business_id = $1
		ORDER BY created_at ASC, account_id ASC
		LIMIT $2 OFFSET $3`

	findAccountForUpdateQuery = `
		SELECT ` + selectAccountFields + `
		FROM accounts
		WHERE business_id = $1 AND account_id = $2
		FOR UPDATE`

	updateAccountBalanceQuery = `
		UPDATE accounts SET balance = $2
		WHERE account_id = $1`
)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.Pool.Exec(ctx, insertAccountQuery,
		m.AccountID,
		m.BusinessID,
		m.Name,
		m.Currency,
		m.Balance,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(apperrors.KindConflict,
				fmt.Sprintf("account with name %q already exists", m.Name), err)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account of the business by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, businessID string, accountID string) (*domain.Account, error) {
	m, err := scanAccount(r.Pool.QueryRow(ctx, findAccountByIDQuery, businessID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// ListAccounts retrieves a page of the business's accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, listAccountsQuery, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, limit)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountForUpdateInTx locks one account row of the business until tx ends.
func (r *PgxAccountRepository) FindAccountForUpdateInTx(ctx context.Context, tx pgx.Tx, businessID string, accountID string) (*domain.Account, error) {
	m, err := scanAccount(tx.QueryRow(ctx, findAccountForUpdateQuery, businessID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// UpdateAccountBalanceInTx writes the balance of an account locked in tx.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance int64) error {
	tag, err := tx.Exec(ctx, updateAccountBalanceQuery, accountID, newBalance)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	if err := row.Scan(
		&m.AccountID,
		&m.BusinessID,
		&m.Name,
		&m.Currency,
		&m.Balance,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
