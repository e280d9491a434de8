package models

import "time"

// Transaction is the transactions table row. Rows are insert-only.
type Transaction struct {
	TransactionID   string    `db:"transaction_id"`
	BusinessID      string    `db:"business_id"`
	Type            string    `db:"type"`
	SourceAccountID *string   `db:"source_account_id"` // NULL for credits
	DestAccountID   *string   `db:"dest_account_id"`   // NULL for debits
	Amount          int64     `db:"amount"`
	CreatedAt       time.Time `db:"created_at"`
}
