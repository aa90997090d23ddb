package domain

import "github.com/shopspring/decimal"

// ChainReceipt is the outcome of a confirmed state-changing contract call.
type ChainReceipt struct {
	TxHash      string  `json:"txHash"`
	TokenID     *string `json:"tokenID,omitempty"` // Emitted identifier, present when the InvoiceCreated event was decoded
	BlockNumber uint64  `json:"blockNumber"`
}

// OnChainInvoice is the contract's view of a listed invoice, the source of
// truth during reconciliation after a partial failure.
type OnChainInvoice struct {
	TokenID   string          `json:"tokenID"`
	DBID      string          `json:"dbID"` // Record store id the listing was created with
	Price     decimal.Decimal `json:"price"`
	Owner     string          `json:"owner"` // Chain address of the current holder
	PdfURL    string          `json:"pdfURL"`
	IsForSale bool            `json:"isForSale"`
}
