package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	portsrepo "github.com/invomesh/invoice_marketplace_app/internal/core/ports/repositories"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
	"github.com/invomesh/invoice_marketplace_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var errMissingTokenEvent = errors.New("listing confirmed but no token id event was decoded")

// invoiceService orchestrates the invoice lifecycle. State-changing chain
// calls always happen before the store write; when the store write then
// fails, the outcome is reported as a partial success carrying the tx hash
// and is never retried here.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	chainSvc    portssvc.ChainClientSvc // nil when chain settings are absent
}

// NewInvoiceService creates the invoice orchestrator. chainSvc may be nil;
// on-chain transitions then fail with a wallet-unavailable error while
// off-chain transitions keep working.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, chainSvc portssvc.ChainClientSvc) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		chainSvc:    chainSvc,
	}
}

// Ensure invoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) requireChain() error {
	if s.chainSvc == nil {
		return apperrors.ErrWalletUnavailable
	}
	return nil
}

// authorize fetches the invoice and checks the actor may perform t on it in
// its current state. Every role-gated branch in the service goes through
// domain.CanTransition; there is no second authorization path.
func (s *invoiceService) authorize(ctx context.Context, actor domain.Actor, invoiceID string, t domain.Transition) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(actor, *invoice, t) {
		return nil, fmt.Errorf("actor %s may not %s invoice %s in status %s: %w",
			actor.UserID, t, invoiceID, invoice.Status, apperrors.ErrForbidden)
	}
	return invoice, nil
}

func (s *invoiceService) UploadInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleMSME {
		return nil, fmt.Errorf("only MSME profiles may upload invoices: %w", apperrors.ErrForbidden)
	}
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	dueDate, err := req.DueDateTime()
	if err != nil {
		return nil, fmt.Errorf("due date must be a %s date: %w", dto.DueDateLayout, apperrors.ErrValidation)
	}
	buyerEmail := strings.TrimSpace(strings.ToLower(req.BuyerEmail))
	if buyerEmail == "" {
		return nil, fmt.Errorf("buyer email is required: %w", apperrors.ErrValidation)
	}
	if buyerEmail == strings.ToLower(actor.Email) {
		return nil, fmt.Errorf("buyer email may not be the uploader's own: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	invoice := domain.Invoice{
		InvoiceID:         uuid.NewString(),
		InvoiceNumber:     req.InvoiceNumber,
		Amount:            req.Amount,
		DueDate:           dueDate,
		BuyerEmail:        buyerEmail,
		BuyerAcknowledged: false,
		Status:            domain.StatusPending,
		PdfURL:            req.PdfURL,
		CreatedBy:         actor.UserID,
		Owner:             actor.Email,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save uploaded invoice", slog.String("error", err.Error()), slog.String("creator_id", actor.UserID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice uploaded", slog.String("invoice_id", invoice.InvoiceID), slog.String("creator_id", actor.UserID))
	return &invoice, nil
}

func (s *invoiceService) ApproveInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.authorize(ctx, actor, invoiceID, domain.TransitionApprove); err != nil {
		return nil, err
	}

	status := domain.StatusAcknowledged
	acknowledged := true
	updated, err := s.invoiceRepo.UpdateInvoice(ctx, invoiceID, domain.InvoiceUpdate{
		Status:            &status,
		BuyerAcknowledged: &acknowledged,
		UpdatedAt:         time.Now(),
	})
	if err != nil {
		logger.Error("Failed to acknowledge invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to acknowledge invoice: %w", err)
	}

	logger.Info("Invoice acknowledged", slog.String("invoice_id", invoiceID), slog.String("buyer_id", actor.UserID))
	return updated, nil
}

func (s *invoiceService) DeclineInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.authorize(ctx, actor, invoiceID, domain.TransitionDecline); err != nil {
		return nil, err
	}

	status := domain.StatusWithdrawn
	acknowledged := false
	updated, err := s.invoiceRepo.UpdateInvoice(ctx, invoiceID, domain.InvoiceUpdate{
		Status:            &status,
		BuyerAcknowledged: &acknowledged,
		UpdatedAt:         time.Now(),
	})
	if err != nil {
		logger.Error("Failed to withdraw invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to withdraw invoice: %w", err)
	}

	logger.Info("Invoice withdrawn", slog.String("invoice_id", invoiceID), slog.String("buyer_id", actor.UserID))
	return updated, nil
}

func (s *invoiceService) ListForSale(ctx context.Context, actor domain.Actor, invoiceID string, listedPrice decimal.Decimal) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if listedPrice.Sign() <= 0 {
		return nil, fmt.Errorf("listed price must be positive: %w", apperrors.ErrValidation)
	}

	invoice, err := s.authorize(ctx, actor, invoiceID, domain.TransitionList)
	if err != nil {
		return nil, err
	}
	if err := s.requireChain(); err != nil {
		return nil, err
	}

	receipt, err := s.chainSvc.CreateInvoice(ctx, invoice.InvoiceID, listedPrice, invoice.Amount, invoice.PdfURL)
	if err != nil {
		logger.Warn("Listing transaction failed", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}

	now := time.Now()
	if receipt.TokenID == nil {
		// The transaction confirmed but the token id could not be decoded.
		// Record the hash for reconciliation and leave the status untouched.
		_, storeErr := s.invoiceRepo.UpdateInvoice(ctx, invoiceID, domain.InvoiceUpdate{
			BlockchainTxHash: &receipt.TxHash,
			UpdatedAt:        now,
		})
		if storeErr != nil {
			logger.Error("Failed to record tx hash after undecodable listing", slog.String("error", storeErr.Error()), slog.String("invoice_id", invoiceID), slog.String("tx_hash", receipt.TxHash))
		}
		logger.Error("Listing confirmed without a decodable token id", slog.String("invoice_id", invoiceID), slog.String("tx_hash", receipt.TxHash))
		return nil, apperrors.NewPartialSuccess(receipt.TxHash, errMissingTokenEvent)
	}

	status := domain.StatusTokenized
	updated, err := s.invoiceRepo.UpdateInvoice(ctx, invoiceID, domain.InvoiceUpdate{
		Status:           &status,
		ListedPrice:      &listedPrice,
		TokenID:          receipt.TokenID,
		BlockchainTxHash: &receipt.TxHash,
		UpdatedAt:        now,
	})
	if err != nil {
		logger.Error("Listing succeeded on chain but the record update failed", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID), slog.String("tx_hash", receipt.TxHash))
		return nil, apperrors.NewPartialSuccess(receipt.TxHash, err)
	}

	logger.Info("Invoice listed for sale", slog.String("invoice_id", invoiceID), slog.String("token_id", *receipt.TokenID), slog.String("tx_hash", receipt.TxHash))
	return updated, nil
}

func (s *invoiceService) PurchaseInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.authorize(ctx, actor, invoiceID, domain.TransitionPurchase)
	if err != nil {
		return nil, err
	}
	if invoice.TokenID == nil || invoice.ListedPrice == nil {
		return nil, fmt.Errorf("invoice %s has no token id or listed price: %w", invoiceID, apperrors.ErrValidation)
	}
	if err := s.requireChain(); err != nil {
		return nil, err
	}

	receipt, err := s.chainSvc.BuyInvoice(ctx, *invoice.TokenID, *invoice.ListedPrice)
	if err != nil {
		logger.Warn("Purchase transaction failed", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}

	status := domain.StatusSold
	newOwner := actor.Email
	updated, err := s.invoiceRepo.UpdateInvoice(ctx, invoiceID, domain.InvoiceUpdate{
		Status:           &status,
		Owner:            &newOwner,
		BlockchainTxHash: &receipt.TxHash,
		UpdatedAt:        time.Now(),
	})
	if err != nil {
		logger.Error("Purchase succeeded on chain but the record update failed", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID), slog.String("tx_hash", receipt.TxHash))
		return nil, apperrors.NewPartialSuccess(receipt.TxHash, err)
	}

	logger.Info("Invoice purchased", slog.String("invoice_id", invoiceID), slog.String("new_owner", newOwner), slog.String("tx_hash", receipt.TxHash))
	return updated, nil
}

func (s *invoiceService) RepayInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.authorize(ctx, actor, invoiceID, domain.TransitionRepay)
	if err != nil {
		return nil, err
	}
	if invoice.TokenID == nil {
		return nil, fmt.Errorf("invoice %s has no token id: %w", invoiceID, apperrors.ErrValidation)
	}
	if err := s.requireChain(); err != nil {
		return nil, err
	}

	// Repayment settles the full original face value, not the sale price.
	receipt, err := s.chainSvc.RepayInvoice(ctx, *invoice.TokenID, invoice.Amount)
	if err != nil {
		logger.Warn("Repayment transaction failed", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}

	status := domain.StatusPaid
	updated, err := s.invoiceRepo.UpdateInvoice(ctx, invoiceID, domain.InvoiceUpdate{
		Status:           &status,
		BlockchainTxHash: &receipt.TxHash,
		UpdatedAt:        time.Now(),
	})
	if err != nil {
		logger.Error("Repayment succeeded on chain but the record update failed", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID), slog.String("tx_hash", receipt.TxHash))
		return nil, apperrors.NewPartialSuccess(receipt.TxHash, err)
	}

	logger.Info("Invoice repaid", slog.String("invoice_id", invoiceID), slog.String("tx_hash", receipt.TxHash))
	return updated, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !s.visibleTo(actor, *invoice) {
		return nil, fmt.Errorf("invoice %s is not visible to actor %s: %w", invoiceID, actor.UserID, apperrors.ErrForbidden)
	}
	return invoice, nil
}

// visibleTo limits single-invoice reads to involved parties, plus investors
// while the invoice is on the open marketplace.
func (s *invoiceService) visibleTo(actor domain.Actor, inv domain.Invoice) bool {
	switch {
	case inv.CreatedBy == actor.UserID:
		return true
	case inv.BuyerEmail == actor.Email:
		return true
	case inv.Owner == actor.Email:
		return true
	case inv.Status == domain.StatusTokenized && actor.Role == domain.RoleInvestor:
		return true
	}
	return false
}

func (s *invoiceService) ListForCreator(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error) {
	if actor.Role != domain.RoleMSME {
		return nil, fmt.Errorf("only MSME profiles have uploads: %w", apperrors.ErrForbidden)
	}
	return s.invoiceRepo.ListInvoicesByCreator(ctx, actor.UserID)
}

func (s *invoiceService) ListPendingForBuyer(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error) {
	if actor.Role != domain.RoleBuyer {
		return nil, fmt.Errorf("only buyer profiles have pending invoices: %w", apperrors.ErrForbidden)
	}
	return s.invoiceRepo.ListInvoicesByBuyerEmail(ctx, actor.Email, []domain.InvoiceStatus{domain.StatusPending})
}

func (s *invoiceService) ListProcessedForBuyer(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error) {
	if actor.Role != domain.RoleBuyer {
		return nil, fmt.Errorf("only buyer profiles have processed invoices: %w", apperrors.ErrForbidden)
	}
	statuses := []domain.InvoiceStatus{
		domain.StatusAcknowledged,
		domain.StatusWithdrawn,
		domain.StatusTokenized,
		domain.StatusSold,
		domain.StatusPaid,
	}
	return s.invoiceRepo.ListInvoicesByBuyerEmail(ctx, actor.Email, statuses)
}

func (s *invoiceService) ListMarketplace(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListInvoicesByStatus(ctx, domain.StatusTokenized)
}

func (s *invoiceService) ListOwned(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error) {
	if actor.Role != domain.RoleInvestor {
		return nil, fmt.Errorf("only investor profiles hold purchased invoices: %w", apperrors.ErrForbidden)
	}
	return s.invoiceRepo.ListInvoicesByOwner(ctx, actor.Email)
}
