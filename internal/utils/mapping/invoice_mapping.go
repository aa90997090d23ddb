package mapping

import (
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	"github.com/invomesh/invoice_marketplace_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		ID:                d.InvoiceID,
		InvoiceNumber:     d.InvoiceNumber,
		Amount:            d.Amount,
		DueDate:           d.DueDate,
		BuyerEmail:        d.BuyerEmail,
		BuyerAcknowledged: d.BuyerAcknowledged,
		Status:            string(d.Status),
		ListedPrice:       d.ListedPrice,
		TokenID:           d.TokenID,
		BlockchainTxHash:  d.BlockchainTxHash,
		PdfURL:            d.PdfURL,
		CreatedBy:         d.CreatedBy,
		Owner:             d.Owner,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:         m.ID,
		InvoiceNumber:     m.InvoiceNumber,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		BuyerEmail:        m.BuyerEmail,
		BuyerAcknowledged: m.BuyerAcknowledged,
		Status:            domain.InvoiceStatus(m.Status),
		ListedPrice:       m.ListedPrice,
		TokenID:           m.TokenID,
		BlockchainTxHash:  m.BlockchainTxHash,
		PdfURL:            m.PdfURL,
		CreatedBy:         m.CreatedBy,
		Owner:             m.Owner,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
