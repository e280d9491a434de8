package mapping

import (
	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/SscSPs/money_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:  d.AccountID,
		BusinessID: d.BusinessID,
		Name:       d.Name,
		Currency:   d.Currency,
		Balance:    d.Balance,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:  m.AccountID,
		BusinessID: m.BusinessID,
		Name:       m.Name,
		Currency:   m.Currency,
		Balance:    m.Balance,
		CreatedAt:  m.CreatedAt,
	}
}
