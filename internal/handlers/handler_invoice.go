package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
	"github.com/invomesh/invoice_marketplace_app/internal/middleware"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// RegisterInvoiceRoutes registers routes related to invoices. The
// state-changing chain transitions carry a tighter rate limit because each
// one submits a transaction.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	rate, _ := limiter.NewRateFromFormatted("10-M")
	chainLimiter := limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("/mine", h.listMine)
		invoices.GET("/pending", h.listPending)
		invoices.GET("/processed", h.listProcessed)
		invoices.GET("/owned", h.listOwned)
		invoices.GET("/marketplace", h.listMarketplace)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/approve", h.approveInvoice)
		invoices.POST("/:id/decline", h.declineInvoice)
		invoices.POST("/:id/list", chainLimiter, h.listForSale)
		invoices.POST("/:id/purchase", chainLimiter, h.purchaseInvoice)
		invoices.POST("/:id/repay", chainLimiter, h.repayInvoice)
	}
}

// createInvoice godoc
// @Summary Upload a new invoice
// @Description Creates a Pending invoice record for the authenticated MSME profile.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.invoiceService.UploadInvoice(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(created, &actor))
}

// listMine godoc
// @Summary List own uploads
// @Description Lists the invoices uploaded by the authenticated MSME profile, newest first.
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/mine [get]
func (h *invoiceHandler) listMine(c *gin.Context) {
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListForCreator(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, &actor))
}

// listPending godoc
// @Summary List invoices awaiting acknowledgement
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/pending [get]
func (h *invoiceHandler) listPending(c *gin.Context) {
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListPendingForBuyer(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, &actor))
}

// listProcessed godoc
// @Summary List already handled invoices for the buyer
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/processed [get]
func (h *invoiceHandler) listProcessed(c *gin.Context) {
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListProcessedForBuyer(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, &actor))
}

// listOwned godoc
// @Summary List invoices held by the investor
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/owned [get]
func (h *invoiceHandler) listOwned(c *gin.Context) {
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListOwned(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, &actor))
}

// listMarketplace godoc
// @Summary List tokenized invoices open for purchase
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Security BearerAuth
// @Router /invoices/marketplace [get]
func (h *invoiceHandler) listMarketplace(c *gin.Context) {
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListMarketplace(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, &actor))
}

// getInvoice godoc
// @Summary Get a single invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, &actor))
}

// approveInvoice godoc
// @Summary Acknowledge a pending invoice
// @Description Moves a Pending invoice to Acknowledged as the matching buyer.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/approve [post]
func (h *invoiceHandler) approveInvoice(c *gin.Context) {
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	updated, err := h.invoiceService.ApproveInvoice(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(updated, &actor))
}

// declineInvoice godoc
// @Summary Decline a pending invoice
// @Description Moves a Pending invoice to the terminal Withdrawn status as the matching buyer.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/decline [post]
func (h *invoiceHandler) declineInvoice(c *gin.Context) {
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	updated, err := h.invoiceService.DeclineInvoice(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(updated, &actor))
}

// listForSale godoc
// @Summary List an acknowledged invoice for sale
// @Description Tokenizes the invoice on chain at the given price and records the token id. A 502 response with a txHash means the chain call succeeded but the record update failed; do not retry.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param listing body dto.ListForSaleRequest true "Sale price"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/list [post]
func (h *invoiceHandler) listForSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ListForSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for listForSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.invoiceService.ListForSale(c.Request.Context(), actor, c.Param("id"), req.ListedPrice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(updated, &actor))
}

// purchaseInvoice godoc
// @Summary Purchase a tokenized invoice
// @Description Buys the invoice on chain at its listed price as an investor.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/purchase [post]
func (h *invoiceHandler) purchaseInvoice(c *gin.Context) {
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	updated, err := h.invoiceService.PurchaseInvoice(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(updated, &actor))
}

// repayInvoice godoc
// @Summary Repay a sold invoice
// @Description Settles the full face value on chain as the matching buyer, closing the invoice.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/repay [post]
func (h *invoiceHandler) repayInvoice(c *gin.Context) {
	actor, ok := middleware.MustGetActor(c)
	if !ok {
		return
	}

	updated, err := h.invoiceService.RepayInvoice(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(updated, &actor))
}
