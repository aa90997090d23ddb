package pgsql

import (
	portsrepo "github.com/invomesh/invoice_marketplace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		InvoiceRepo: invoiceRepo,
		UserRepo:    userRepo,
	}
}
