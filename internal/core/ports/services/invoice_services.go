package services

import (
	"context"

	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
	"github.com/shopspring/decimal"
)

// InvoiceReaderSvc defines the role-filtered read operations over invoice records.
type InvoiceReaderSvc interface {
	// GetInvoice retrieves a single invoice visible to the actor.
	GetInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error)

	// ListForCreator lists the MSME actor's own uploads, newest first.
	ListForCreator(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error)

	// ListPendingForBuyer lists invoices awaiting the buyer actor's acknowledgement.
	ListPendingForBuyer(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error)

	// ListProcessedForBuyer lists the buyer actor's non-pending invoices.
	ListProcessedForBuyer(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error)

	// ListMarketplace lists all tokenized invoices available for purchase.
	ListMarketplace(ctx context.Context) ([]domain.Invoice, error)

	// ListOwned lists invoices currently held by the investor actor.
	ListOwned(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error)
}

// InvoiceLifecycleSvc defines the state-machine transitions. Every method
// validates preconditions against the current record before any side effect;
// chain calls always happen before the store write.
type InvoiceLifecycleSvc interface {
	// UploadInvoice creates a new Pending record for the MSME actor.
	UploadInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// ApproveInvoice acknowledges a Pending invoice as the matching buyer.
	ApproveInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error)

	// DeclineInvoice withdraws a Pending invoice as the matching buyer.
	DeclineInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error)

	// ListForSale tokenizes an Acknowledged invoice on chain at the given price.
	ListForSale(ctx context.Context, actor domain.Actor, invoiceID string, listedPrice decimal.Decimal) (*domain.Invoice, error)

	// PurchaseInvoice buys a Tokenized invoice on chain as the investor actor.
	PurchaseInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error)

	// RepayInvoice settles a Sold invoice on chain as the matching buyer.
	RepayInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceLifecycleSvc
}
