package domain

import (
	"time"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/google/uuid"
)

// TransactionType is the kind of money movement.
type TransactionType string

const (
	Credit   TransactionType = "credit"
	Debit    TransactionType = "debit"
	Transfer TransactionType = "transfer"
)

// IsValid reports whether t is one of the known movement types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Credit, Debit, Transfer:
		return true
	}
	return false
}

// Transaction is an immutable record of one applied movement.
//
// Leg presence by type:
//   - credit:   Source nil, Dest set
//   - debit:    Source set, Dest nil
//   - transfer: both set and distinct
type Transaction struct {
	TransactionID   string          `json:"id"`
	BusinessID      string          `json:"business_id"`
	Type            TransactionType `json:"type"`
	SourceAccountID *string         `json:"source_account_id"`
	DestAccountID   *string         `json:"dest_account_id"`
	Amount          int64           `json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateTransactionRequest is the caller's movement request before validation.
type CreateTransactionRequest struct {
	Type            TransactionType
	Amount          int64
	SourceAccountID *string
	DestAccountID   *string
}

// Validate checks amount and leg rules without touching storage and returns a
// copy whose account IDs are in canonical UUID form.
func (r CreateTransactionRequest) Validate() (CreateTransactionRequest, error) {
	if r.Amount <= 0 {
		return r, apperrors.BadRequest("amount must be > 0")
	}

	switch r.Type {
	case Credit:
		if r.DestAccountID == nil || r.SourceAccountID != nil {
			return r, apperrors.BadRequest("credit requires dest_account_id and no source_account_id")
		}
	case Debit:
		if r.SourceAccountID == nil || r.DestAccountID != nil {
			return r, apperrors.BadRequest("debit requires source_account_id and no dest_account_id")
		}
	case Transfer:
		if r.SourceAccountID == nil || r.DestAccountID == nil {
			return r, apperrors.BadRequest("transfer requires source_account_id and dest_account_id")
		}
	default:
		return r, apperrors.BadRequest("type must be one of credit, debit, transfer")
	}

	out := r
	if r.SourceAccountID != nil {
		id, err := canonicalID(*r.SourceAccountID, "source_account_id")
		if err != nil {
			return r, err
		}
		out.SourceAccountID = &id
	}
	if r.DestAccountID != nil {
		id, err := canonicalID(*r.DestAccountID, "dest_account_id")
		if err != nil {
			return r, err
		}
		out.DestAccountID = &id
	}

	if out.Type == Transfer && *out.SourceAccountID == *out.DestAccountID {
		return r, apperrors.BadRequest("transfer requires distinct source and destination accounts")
	}
	return out, nil
}

func canonicalID(raw, field string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.BadRequest(field + " must be a valid UUID")
	}
	return id.String(), nil
}

// OrderAccountIDs returns the two IDs sorted by their UUID bytes. Every code path
// that locks two accounts acquires them in this order.
func OrderAccountIDs(a, b string) (string, string) {
	ua, errA := uuid.Parse(a)
	ub, errB := uuid.Parse(b)
	if errA != nil || errB != nil {
		if a <= b {
			return a, b
		}
		return b, a
	}
	for i := range ua {
		if ua[i] != ub[i] {
			if ua[i] < ub[i] {
				return a, b
			}
			return b, a
		}
	}
	return a, b
}
