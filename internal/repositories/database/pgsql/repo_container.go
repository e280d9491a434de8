package pgsql

import (
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx repository onto one pool.
func NewRepositoryProvider(dbPool DBPool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:       accountRepo,
		AccountRepo:     accountRepo,
		TransactionRepo: newPgxTransactionRepository(dbPool),
		WebhookRepo:     newPgxWebhookRepository(dbPool),
		APIKeyRepo:      newPgxAPIKeyRepository(dbPool),
		BusinessRepo:    newPgxBusinessRepository(dbPool),
	}
}

// NewWebhookDeliveryStore returns the outbox data access used by the delivery worker.
func NewWebhookDeliveryStore(dbPool DBPool) portsrepo.WebhookDeliveryStore {
	return newPgxWebhookRepository(dbPool)
}
