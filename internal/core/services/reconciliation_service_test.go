package services_test

import (
	"context"
	"testing"

	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	"github.com/invomesh/invoice_marketplace_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onChainView(inv *domain.Invoice, forSale bool) *domain.OnChainInvoice {
	return &domain.OnChainInvoice{
		TokenID:   *inv.TokenID,
		DBID:      inv.InvoiceID,
		Price:     *inv.ListedPrice,
		Owner:     "0x2222222222222222222222222222222222222222",
		PdfURL:    inv.PdfURL,
		IsForSale: forSale,
	}
}

func TestReconciliationReport(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockInvoiceRepository)
	mockChain := new(MockChainClient)
	svc := services.NewReconciliationService(mockRepo, mockChain)

	tokenA := "1"
	tokenB := "2"
	price := decimal.NewFromInt(3)

	clean := domain.Invoice{InvoiceID: "inv-a", Status: domain.StatusTokenized, TokenID: &tokenA, ListedPrice: &price}
	soldButStillForSale := domain.Invoice{InvoiceID: "inv-b", Status: domain.StatusSold, TokenID: &tokenB, ListedPrice: &price}
	missingToken := domain.Invoice{InvoiceID: "inv-c", Status: domain.StatusPaid}

	mockRepo.On("ListInvoicesByStatus", ctx, domain.StatusTokenized).Return([]domain.Invoice{clean}, nil).Once()
	mockRepo.On("ListInvoicesByStatus", ctx, domain.StatusSold).Return([]domain.Invoice{soldButStillForSale}, nil).Once()
	mockRepo.On("ListInvoicesByStatus", ctx, domain.StatusPaid).Return([]domain.Invoice{missingToken}, nil).Once()

	mockChain.On("GetInvoice", ctx, tokenA).Return(onChainView(&clean, true), nil).Once()
	mockChain.On("GetInvoice", ctx, tokenB).Return(onChainView(&soldButStillForSale, true), nil).Once()

	report, err := svc.Report(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, report.CheckedCount)
	require.Len(t, report.Findings, 2)

	found := map[string]bool{}
	for _, f := range report.Findings {
		found[f.InvoiceID] = true
	}
	assert.False(t, found["inv-a"], "a consistent invoice must not be reported")
	assert.True(t, found["inv-b"], "sold invoice still for sale on chain must be reported")
	assert.True(t, found["inv-c"], "on-chain status without token id must be reported")

	mockRepo.AssertExpectations(t)
	mockChain.AssertExpectations(t)
}

func TestReconciliationReport_WalletUnavailable(t *testing.T) {
	svc := services.NewReconciliationService(new(MockInvoiceRepository), nil)

	_, err := svc.Report(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrWalletUnavailable)

	_, err = svc.ChainInvoiceCount(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrWalletUnavailable)
}

func TestChainInvoiceCount(t *testing.T) {
	mockChain := new(MockChainClient)
	svc := services.NewReconciliationService(new(MockInvoiceRepository), mockChain)

	mockChain.On("GetInvoiceCount", context.Background()).Return(uint64(12), nil).Once()

	count, err := svc.ChainInvoiceCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(12), count)
}
