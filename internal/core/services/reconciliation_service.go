package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	portsrepo "github.com/invomesh/invoice_marketplace_app/internal/core/ports/repositories"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
	"github.com/invomesh/invoice_marketplace_app/internal/middleware"
)

// reconciliationService compares the record store with the chain's view.
// It only reports; repairing a divergence is an operator decision.
type reconciliationService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	chainSvc    portssvc.ChainClientSvc
}

// NewReconciliationService creates the reconciliation reporter. chainSvc may
// be nil; reports then fail with a wallet-unavailable error.
func NewReconciliationService(invoiceRepo portsrepo.InvoiceRepositoryFacade, chainSvc portssvc.ChainClientSvc) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		invoiceRepo: invoiceRepo,
		chainSvc:    chainSvc,
	}
}

// Ensure reconciliationService implements the portssvc.ReconciliationSvcFacade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) Report(ctx context.Context) (*dto.ReconciliationReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.chainSvc == nil {
		return nil, apperrors.ErrWalletUnavailable
	}

	report := &dto.ReconciliationReport{
		Findings:    []dto.ReconciliationFinding{},
		GeneratedAt: time.Now(),
	}

	for _, status := range []domain.InvoiceStatus{domain.StatusTokenized, domain.StatusSold, domain.StatusPaid} {
		invoices, err := s.invoiceRepo.ListInvoicesByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s invoices: %w", status, err)
		}
		for i := range invoices {
			report.CheckedCount++
			s.checkInvoice(ctx, &invoices[i], report)
		}
	}

	logger.Info("Reconciliation report generated", slog.Int("checked", report.CheckedCount), slog.Int("findings", len(report.Findings)))
	return report, nil
}

// checkInvoice appends a finding for every divergence between the stored
// record and getInvoice(token_id).
func (s *reconciliationService) checkInvoice(ctx context.Context, inv *domain.Invoice, report *dto.ReconciliationReport) {
	if inv.TokenID == nil {
		report.Findings = append(report.Findings, dto.ReconciliationFinding{
			InvoiceID:    inv.InvoiceID,
			StoredStatus: string(inv.Status),
			Issue:        "stored as on-chain but carries no token id",
		})
		return
	}

	onChain, err := s.chainSvc.GetInvoice(ctx, *inv.TokenID)
	if err != nil {
		report.Findings = append(report.Findings, dto.ReconciliationFinding{
			InvoiceID:    inv.InvoiceID,
			TokenID:      inv.TokenID,
			StoredStatus: string(inv.Status),
			Issue:        fmt.Sprintf("chain read failed: %v", err),
		})
		return
	}

	if onChain.DBID != inv.InvoiceID {
		report.Findings = append(report.Findings, dto.ReconciliationFinding{
			InvoiceID:    inv.InvoiceID,
			TokenID:      inv.TokenID,
			StoredStatus: string(inv.Status),
			Issue:        fmt.Sprintf("token maps to a different record id %q on chain", onChain.DBID),
			ChainOwner:   onChain.Owner,
			ChainForSale: &onChain.IsForSale,
		})
		return
	}

	// A Tokenized record should still be for sale; Sold and Paid should not.
	expectForSale := inv.Status == domain.StatusTokenized
	if onChain.IsForSale != expectForSale {
		report.Findings = append(report.Findings, dto.ReconciliationFinding{
			InvoiceID:    inv.InvoiceID,
			TokenID:      inv.TokenID,
			StoredStatus: string(inv.Status),
			Issue:        fmt.Sprintf("chain for-sale flag is %t, stored status expects %t", onChain.IsForSale, expectForSale),
			ChainOwner:   onChain.Owner,
			ChainForSale: &onChain.IsForSale,
		})
	}
}

func (s *reconciliationService) ChainInvoiceCount(ctx context.Context) (uint64, error) {
	if s.chainSvc == nil {
		return 0, apperrors.ErrWalletUnavailable
	}
	return s.chainSvc.GetInvoiceCount(ctx)
}
