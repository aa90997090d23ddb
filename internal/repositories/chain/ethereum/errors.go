package ethereum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
)

// EIP-1193 code returned when the signer declines the transaction prompt.
const codeUserRejected = 4001

// mapChainErr classifies provider and contract failures into app sentinels.
// Anything unrecognized stays a plain wrapped error; callers never retry on
// their own either way.
func mapChainErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(apperrors.ErrTimeout, err)
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeUserRejected {
		return errors.Join(apperrors.ErrUserRejected, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "execution reverted"):
		return errors.Join(apperrors.ErrReverted, err)
	case strings.Contains(msg, "user denied"), strings.Contains(msg, "user rejected"):
		return errors.Join(apperrors.ErrUserRejected, err)
	}

	return fmt.Errorf("chain call failed: %w", err)
}
