package services

import (
	"context"

	"github.com/invomesh/invoice_marketplace_app/internal/dto"
)

// ReconciliationSvcFacade compares the record store against the chain after a
// partial failure. Read-only: it reports divergences, it never repairs them.
type ReconciliationSvcFacade interface {
	// Report compares every stored on-chain invoice with getInvoice(token_id)
	// and returns the divergences found.
	Report(ctx context.Context) (*dto.ReconciliationReport, error)

	// ChainInvoiceCount reads getInvoiceCount from the contract.
	ChainInvoiceCount(ctx context.Context) (uint64, error)
}
