package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
)

// reconciliationHandler exposes the read-only store-vs-chain comparison.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	reconciliation := rg.Group("/reconciliation")
	{
		reconciliation.GET("/report", h.getReport)
		reconciliation.GET("/chain-count", h.getChainCount)
	}
}

// getReport godoc
// @Summary Compare stored invoices against the chain
// @Description Reports divergences between the record store and getInvoice(token_id) for every stored on-chain invoice. Read-only.
// @Tags reconciliation
// @Produce json
// @Success 200 {object} dto.ReconciliationReport
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /reconciliation/report [get]
func (h *reconciliationHandler) getReport(c *gin.Context) {
	report, err := h.reconciliationService.Report(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// getChainCount godoc
// @Summary Read the contract's invoice count
// @Tags reconciliation
// @Produce json
// @Success 200 {object} map[string]uint64
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /reconciliation/chain-count [get]
func (h *reconciliationHandler) getChainCount(c *gin.Context) {
	count, err := h.reconciliationService.ChainInvoiceCount(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
