package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
	"github.com/invomesh/invoice_marketplace_app/internal/middleware"
)

// documentHandler issues presigned URLs for invoice PDF storage.
// documentService is nil when no bucket is configured; the routes then
// answer 503 instead of being absent, so the UI gets a clear signal.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.POST("/presign-upload", h.presignUpload)
		documents.GET("/presign-download", h.presignDownload)
	}
}

func (h *documentHandler) available(c *gin.Context) bool {
	if h.documentService == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Document storage is not configured"})
		return false
	}
	return true
}

// presignUpload godoc
// @Summary Get a presigned PDF upload URL
// @Description Returns a short-lived PUT URL plus the public URL to store as the invoice's pdf_url.
// @Tags documents
// @Accept json
// @Produce json
// @Param upload body dto.PresignUploadRequest true "File details"
// @Success 200 {object} dto.PresignUploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/presign-upload [post]
func (h *documentHandler) presignUpload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.MustGetActor(c)
	if !ok || !h.available(c) {
		return
	}

	var req dto.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for presignUpload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.documentService.PresignUpload(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// presignDownload godoc
// @Summary Get a presigned PDF download URL
// @Tags documents
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/presign-download [get]
func (h *documentHandler) presignDownload(c *gin.Context) {
	if _, ok := middleware.MustGetActor(c); !ok || !h.available(c) {
		return
	}

	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing object key"})
		return
	}

	url, err := h.documentService.PresignDownload(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
