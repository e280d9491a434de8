package models

import "time"

// Account is the accounts table row.
type Account struct {
	AccountID  string    `db:"account_id"`
	BusinessID string    `db:"business_id"`
	Name       string    `db:"name"`
	Currency   string    `db:"currency"`
	Balance    int64     `db:"balance"` // minor units, CHECK (balance >= 0)
	CreatedAt  time.Time `db:"created_at"`
}
