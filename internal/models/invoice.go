package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the database row shape for the invoices table. Column names are
// preserved exactly for compatibility with previously stored data.
type Invoice struct {
	ID                string           `db:"id"`
	InvoiceNumber     string           `db:"invoice_number"`
	Amount            decimal.Decimal  `db:"amount"`
	DueDate           time.Time        `db:"due_date"`
	BuyerEmail        string           `db:"buyer_email"`
	BuyerAcknowledged bool             `db:"buyer_acknowledged"`
	Status            string           `db:"status"`
	ListedPrice       *decimal.Decimal `db:"listed_price"`
	TokenID           *string          `db:"token_id"`
	BlockchainTxHash  *string          `db:"blockchain_tx_hash"`
	PdfURL            string           `db:"pdf_url"`
	CreatedBy         string           `db:"created_by"`
	Owner             string           `db:"owner"`
	CreatedAt         time.Time        `db:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at"`
}
