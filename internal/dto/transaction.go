package dto

import (
	"time"

	"github.com/SscSPs/money_ledger/internal/core/domain"
)

// CreateTransactionRequest is the JSON body of POST /transactions.
// Leg rules are enforced by the ledger engine, not by binding tags.
type CreateTransactionRequest struct {
	Type            string  `json:"type" binding:"required"`
	Amount          int64   `json:"amount"`
	SourceAccountID *string `json:"source_account_id"`
	DestAccountID   *string `json:"dest_account_id"`
}

// ToDomain converts the request body into the engine's request type.
func (r CreateTransactionRequest) ToDomain() domain.CreateTransactionRequest {
	return domain.CreateTransactionRequest{
		Type:            domain.TransactionType(r.Type),
		Amount:          r.Amount,
		SourceAccountID: r.SourceAccountID,
		DestAccountID:   r.DestAccountID,
	}
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"id"`
	Type            domain.TransactionType `json:"type"`
	SourceAccountID *string                `json:"source_account_id"`
	DestAccountID   *string                `json:"dest_account_id"`
	Amount          int64                  `json:"amount"`
	CreatedAt       time.Time              `json:"created_at"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		Type:            txn.Type,
		SourceAccountID: txn.SourceAccountID,
		DestAccountID:   txn.DestAccountID,
		Amount:          txn.Amount,
		CreatedAt:       txn.CreatedAt,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken string `form:"next_token"`
}

// ListTransactionsResponse is a page of transactions plus the token for the next page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"next_token,omitempty"`
}

// ToListTransactionsResponse converts a page of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken string) ListTransactionsResponse {
	res := ListTransactionsResponse{Transactions: make([]TransactionResponse, len(txns))}
	for i := range txns {
		res.Transactions[i] = ToTransactionResponse(&txns[i])
	}
	if nextToken != "" {
		res.NextToken = &nextToken
	}
	return res
}
