package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/money_ledger/internal/apperrors"
)

// MaxAccountNameLength bounds the user-supplied account name.
const MaxAccountNameLength = 128

// Account represents a business-owned balance holder.
// Balance is in minor units and only ever changed by the ledger engine.
type Account struct {
	AccountID  string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	Currency   string    `json:"currency"` // ISO-4217 style 3-letter code
	Balance    int64     `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}

// NormalizeCurrency trims and upper-cases a currency code and checks it is three ASCII letters.
func NormalizeCurrency(input string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(input))
	if len(c) != 3 {
		return "", apperrors.BadRequest("currency must be a 3-letter code, e.g. USD")
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return "", apperrors.BadRequest("currency must be a 3-letter code, e.g. USD")
		}
	}
	return c, nil
}

// NormalizeAccountName trims the name and enforces 1..MaxAccountNameLength characters.
func NormalizeAccountName(input string) (string, error) {
	name := strings.TrimSpace(input)
	if name == "" || len(name) > MaxAccountNameLength {
		return "", apperrors.BadRequest("name is required (1-128 chars)")
	}
	return name, nil
}
