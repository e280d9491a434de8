package domain

import (
	"math"

	"github.com/SscSPs/money_ledger/internal/apperrors"
)

// AddBalance returns balance+amount, failing instead of wrapping on overflow.
func AddBalance(balance, amount int64) (int64, error) {
	if (amount > 0 && balance > math.MaxInt64-amount) || (amount < 0 && balance < math.MinInt64-amount) {
		return 0, apperrors.Internal("balance overflow", nil)
	}
	return balance + amount, nil
}

// SubBalance returns balance-amount, failing instead of wrapping on overflow.
func SubBalance(balance, amount int64) (int64, error) {
	if (amount > 0 && balance < math.MinInt64+amount) || (amount < 0 && balance > math.MaxInt64+amount) {
		return 0, apperrors.Internal("balance underflow", nil)
	}
	return balance - amount, nil
}
