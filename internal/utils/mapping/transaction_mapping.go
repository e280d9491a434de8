package mapping

import (
	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/SscSPs/money_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		BusinessID:      d.BusinessID,
		Type:            string(d.Type),
		SourceAccountID: d.SourceAccountID,
		DestAccountID:   d.DestAccountID,
		Amount:          d.Amount,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		BusinessID:      m.BusinessID,
		Type:            domain.TransactionType(m.Type),
		SourceAccountID: m.SourceAccountID,
		DestAccountID:   m.DestAccountID,
		Amount:          m.Amount,
		CreatedAt:       m.CreatedAt,
	}
}
