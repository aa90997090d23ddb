package services

import (
	"log/slog"

	portsrepo "github.com/invomesh/invoice_marketplace_app/internal/core/ports/repositories"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
	"github.com/invomesh/invoice_marketplace_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. chainSvc is nil when chain settings are absent; the invoice
// and reconciliation services then degrade to wallet-unavailable errors on
// on-chain operations while everything off-chain keeps working.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, chainSvc portssvc.ChainClientSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Chain = chainSvc
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, chainSvc)
	container.Reconciliation = NewReconciliationService(repos.InvoiceRepo, chainSvc)
	container.GoogleOAuthHandler = NewGoogleOAuthService(cfg)

	if cfg.S3Bucket != "" {
		documents, err := NewDocumentService(cfg)
		if err != nil {
			slog.Warn("Document storage unavailable", slog.String("error", err.Error()))
		} else {
			container.Documents = documents
		}
	}

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.InvoiceSvcFacade        = (*invoiceService)(nil)
	_ portssvc.UserSvcFacade           = (*userService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
)
