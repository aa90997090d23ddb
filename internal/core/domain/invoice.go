package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus drives all permission and action gating for an invoice.
// Values are stored verbatim and must match existing rows.
type InvoiceStatus string

const (
	StatusPending      InvoiceStatus = "Pending"
	StatusAcknowledged InvoiceStatus = "Acknowledged"
	StatusWithdrawn    InvoiceStatus = "Withdrawn"
	StatusTokenized    InvoiceStatus = "Tokenized"
	StatusSold         InvoiceStatus = "Sold"
	StatusPaid         InvoiceStatus = "Paid"
)

// IsTerminal reports whether no further transition is permitted from s.
func (s InvoiceStatus) IsTerminal() bool {
	return s == StatusWithdrawn || s == StatusPaid
}

// IsOnChain reports whether the invoice exists on the chain in this status.
// An invoice in one of these states must carry a token id and listed price.
func (s InvoiceStatus) IsOnChain() bool {
	return s == StatusTokenized || s == StatusSold || s == StatusPaid
}

// Invoice is the central entity of the marketplace.
type Invoice struct {
	InvoiceID         string           `json:"id"`
	InvoiceNumber     string           `json:"invoiceNumber"` // Free-text business identifier, immutable after creation
	Amount            decimal.Decimal  `json:"amount"`        // Original face value, positive, immutable
	DueDate           time.Time        `json:"dueDate"`       // Informational only, not enforced against transitions
	BuyerEmail        string           `json:"buyerEmail"`    // Counterparty required to acknowledge
	BuyerAcknowledged bool             `json:"buyerAcknowledged"`
	Status            InvoiceStatus    `json:"status"`
	ListedPrice       *decimal.Decimal `json:"listedPrice"`      // Sale price, set at listing time, distinct from Amount
	TokenID           *string          `json:"tokenID"`          // Chain-side identifier, set after a successful listing
	BlockchainTxHash  *string          `json:"blockchainTxHash"` // Informational record of the listing transaction
	PdfURL            string           `json:"pdfURL"`
	CreatedBy         string           `json:"createdBy"` // Profile id of the uploading MSME, immutable
	Owner             string           `json:"owner"`     // Email of the current economic holder
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"` // Refreshed on every mutating transition
}

// InvoiceUpdate is a partial update applied by the record store.
// Nil fields are left untouched; UpdatedAt is always written (last-write-wins).
type InvoiceUpdate struct {
	Status            *InvoiceStatus
	BuyerAcknowledged *bool
	ListedPrice       *decimal.Decimal
	TokenID           *string
	BlockchainTxHash  *string
	Owner             *string
	UpdatedAt         time.Time
}
