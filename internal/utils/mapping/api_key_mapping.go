package mapping

import (
	"github.com/SscSPs/money_ledger/internal/core/domain"
	"github.com/SscSPs/money_ledger/internal/models"
)

// ToModelAPIKey converts a domain APIKey to a model APIKey
func ToModelAPIKey(d domain.APIKey) models.APIKey {
	return models.APIKey{
		APIKeyID:   d.APIKeyID,
		BusinessID: d.BusinessID,
		KeyHash:    d.KeyHash,
		RevokedAt:  d.RevokedAt,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAPIKey converts a model APIKey to a domain APIKey
func ToDomainAPIKey(m models.APIKey) domain.APIKey {
	return domain.APIKey{
		APIKeyID:   m.APIKeyID,
		BusinessID: m.BusinessID,
		KeyHash:    m.KeyHash,
		RevokedAt:  m.RevokedAt,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainBusiness converts a model Business to a domain Business
func ToDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		BusinessID: m.BusinessID,
		Name:       m.Name,
		CreatedAt:  m.CreatedAt,
	}
}
