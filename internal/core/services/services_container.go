package services

import (
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_ledger/internal/core/ports/services"
	"github.com/SscSPs/money_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger engine enqueues through the webhook service, so build it first.
	container.Webhook = NewWebhookService(repos.WebhookRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Transaction = NewTransactionService(
		repos.TxManager,
		repos.AccountRepo,
		repos.TransactionRepo,
		container.Webhook,
	)
	container.Business = NewBusinessService(repos.BusinessRepo)
	container.APIKey = NewAPIKeyService(repos.APIKeyRepo, repos.BusinessRepo, cfg.HMACSecret)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade  = (*accountService)(nil)
	_ portssvc.BusinessSvcFacade = (*businessService)(nil)
)
