package dto

import "time"

// ReconciliationFinding describes one divergence between a stored invoice and
// the chain's view of it.
type ReconciliationFinding struct {
	InvoiceID    string  `json:"invoiceID"`
	TokenID      *string `json:"tokenID,omitempty"`
	StoredStatus string  `json:"storedStatus"`
	Issue        string  `json:"issue"`
	ChainOwner   string  `json:"chainOwner,omitempty"`
	ChainForSale *bool   `json:"chainForSale,omitempty"`
}

// ReconciliationReport is the result of comparing the record store with the chain.
type ReconciliationReport struct {
	CheckedCount int                     `json:"checkedCount"`
	Findings     []ReconciliationFinding `json:"findings"`
	GeneratedAt  time.Time               `json:"generatedAt"`
}
