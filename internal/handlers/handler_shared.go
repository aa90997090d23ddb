package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error  string `json:"error"`
	TxHash string `json:"txHash,omitempty"`
}

// respondError maps service errors to HTTP responses. Chain-boundary errors
// get their own statuses so the UI can tell a declined signature from a
// revert; a partial success carries the tx hash for manual reconciliation.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var partial *apperrors.PartialSuccessError
	if errors.As(err, &partial) {
		logger.Error("Chain call succeeded but record update failed", slog.String("tx_hash", partial.TxHash), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:  fmt.Sprintf("The transaction succeeded on chain (tx %s) but the record could not be updated. Do not retry; the record needs reconciliation.", partial.TxHash),
			TxHash: partial.TxHash,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Resource already exists"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "This action is not allowed for your role or the invoice's current status"})
	case errors.Is(err, apperrors.ErrWalletUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Chain access is not configured or unavailable"})
	case errors.Is(err, apperrors.ErrWrongNetwork):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Chain provider is connected to the wrong network"})
	case errors.Is(err, apperrors.ErrUserRejected):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Transaction was rejected by the signer"})
	case errors.Is(err, apperrors.ErrReverted):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Transaction was rejected by the contract"})
	case errors.Is(err, apperrors.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "Operation timed out; check the transaction status before retrying"})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
