package dto

import (
	"time"

	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DueDateLayout is the wire format for invoice due dates. Due dates carry no
// time component, so they travel as plain calendar dates rather than RFC3339.
const DueDateLayout = "2006-01-02"

// CreateInvoiceRequest defines the data needed to upload a new invoice.
// The PDF itself is uploaded separately via the documents endpoint; PdfURL is
// the resulting public location.
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	DueDate       string          `json:"dueDate" binding:"required,datetime=2006-01-02"`
	BuyerEmail    string          `json:"buyerEmail" binding:"required,email"`
	PdfURL        string          `json:"pdfURL" binding:"required,url"`
}

// DueDateTime parses the wire due date into a time value.
func (r CreateInvoiceRequest) DueDateTime() (time.Time, error) {
	return time.Parse(DueDateLayout, r.DueDate)
}

// ListForSaleRequest carries the sale price for the listing transaction.
type ListForSaleRequest struct {
	ListedPrice decimal.Decimal `json:"listedPrice" binding:"required"`
}

// InvoiceResponse is the API representation of an invoice.
type InvoiceResponse struct {
	ID                string              `json:"id"`
	InvoiceNumber     string              `json:"invoiceNumber"`
	Amount            decimal.Decimal     `json:"amount"`
	DueDate           time.Time           `json:"dueDate"`
	BuyerEmail        string              `json:"buyerEmail"`
	BuyerAcknowledged bool                `json:"buyerAcknowledged"`
	Status            string              `json:"status"`
	ListedPrice       *decimal.Decimal    `json:"listedPrice,omitempty"`
	TokenID           *string             `json:"tokenID,omitempty"`
	BlockchainTxHash  *string             `json:"blockchainTxHash,omitempty"`
	PdfURL            string              `json:"pdfURL"`
	CreatedBy         string              `json:"createdBy"`
	Owner             string              `json:"owner"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
	AllowedActions    []domain.Transition `json:"allowedActions,omitempty"`
}

// ListInvoicesResponse wraps a list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToInvoiceResponse converts a domain Invoice to its API representation.
// When an actor is supplied, the response includes the transitions that actor
// may perform, so the UI gates its buttons from the same table as the backend.
func ToInvoiceResponse(inv *domain.Invoice, actor *domain.Actor) InvoiceResponse {
	resp := InvoiceResponse{
		ID:                inv.InvoiceID,
		InvoiceNumber:     inv.InvoiceNumber,
		Amount:            inv.Amount,
		DueDate:           inv.DueDate,
		BuyerEmail:        inv.BuyerEmail,
		BuyerAcknowledged: inv.BuyerAcknowledged,
		Status:            string(inv.Status),
		ListedPrice:       inv.ListedPrice,
		TokenID:           inv.TokenID,
		BlockchainTxHash:  inv.BlockchainTxHash,
		PdfURL:            inv.PdfURL,
		CreatedBy:         inv.CreatedBy,
		Owner:             inv.Owner,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
	if actor != nil {
		resp.AllowedActions = domain.AllowedTransitions(*actor, *inv)
	}
	return resp
}

// ToListInvoicesResponse converts a slice of domain invoices.
func ToListInvoicesResponse(invoices []domain.Invoice, actor *domain.Actor) ListInvoicesResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i], actor)
	}
	return ListInvoicesResponse{Invoices: out}
}
