package repositories

import (
	"context"

	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice records
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByCreator retrieves the invoices uploaded by an MSME profile,
	// newest first.
	ListInvoicesByCreator(ctx context.Context, creatorID string) ([]domain.Invoice, error)

	// ListInvoicesByBuyerEmail retrieves the invoices addressed to a buyer,
	// optionally filtered to the given statuses. An empty filter means all.
	ListInvoicesByBuyerEmail(ctx context.Context, buyerEmail string, statuses []domain.InvoiceStatus) ([]domain.Invoice, error)

	// ListInvoicesByStatus retrieves all invoices in the given status.
	ListInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error)

	// ListInvoicesByOwner retrieves the invoices currently held by the given identity.
	ListInvoicesByOwner(ctx context.Context, owner string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice records
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice record.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice applies a partial update to an invoice. Last write wins on
	// updated_at; concurrent updates to disjoint fields are not merged, callers
	// re-read before updating.
	UpdateInvoice(ctx context.Context, invoiceID string, update domain.InvoiceUpdate) (*domain.Invoice, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
