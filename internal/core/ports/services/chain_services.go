package services

import (
	"context"

	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ChainClientSvc wraps the fixed-ABI marketplace contract. Implementations
// verify the expected network before every state-changing call and convert
// decimal amounts to minor units (10^18) without rounding. A failed
// submission is never coerced into success; callers must not retry
// automatically.
type ChainClientSvc interface {
	// CreateInvoice submits the listing transaction and returns its receipt.
	// The receipt carries the token id emitted by the InvoiceCreated event
	// when it could be decoded.
	CreateInvoice(ctx context.Context, dbID string, listedPrice, originalAmount decimal.Decimal, pdfURL string) (*domain.ChainReceipt, error)

	// BuyInvoice submits the purchase transaction, sending listedPrice as value.
	BuyInvoice(ctx context.Context, tokenID string, listedPrice decimal.Decimal) (*domain.ChainReceipt, error)

	// RepayInvoice submits the repayment transaction, sending originalAmount as value.
	RepayInvoice(ctx context.Context, tokenID string, originalAmount decimal.Decimal) (*domain.ChainReceipt, error)

	// GetInvoice reads the contract's view of a listed invoice.
	GetInvoice(ctx context.Context, tokenID string) (*domain.OnChainInvoice, error)

	// GetInvoiceCount reads the number of invoices ever listed on the contract.
	GetInvoiceCount(ctx context.Context) (uint64, error)
}
