package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller's role or identity does not permit the operation.
var ErrForbidden = errors.New("forbidden")

// Chain boundary errors. These are never retried automatically; a failed
// submission must be re-triggered by the actor.
var (
	// ErrWalletUnavailable indicates no chain provider/signer is configured or reachable.
	ErrWalletUnavailable = errors.New("wallet provider unavailable")

	// ErrWrongNetwork indicates the provider is connected to a chain other than the expected one.
	ErrWrongNetwork = errors.New("wrong network selected")

	// ErrUserRejected indicates the wallet holder declined the transaction prompt.
	ErrUserRejected = errors.New("transaction rejected by wallet holder")

	// ErrReverted indicates the contract rejected the call.
	ErrReverted = errors.New("transaction reverted on chain")

	// ErrTimeout indicates a chain or store call exceeded its cancellation budget.
	ErrTimeout = errors.New("operation timed out")
)

// ErrPersistence indicates a record store write failed with no chain side effect.
// Remediation is a plain retry by the actor.
var ErrPersistence = errors.New("record store write failed")

// ErrPartialSuccess indicates the chain call succeeded but the record store
// write failed afterwards. Remediation is manual reconciliation against
// getInvoice(token_id), never an automatic retry of the chain call.
var ErrPartialSuccess = errors.New("chain call succeeded but record update failed")

// PartialSuccessError carries the transaction hash of the successful chain
// call so the operator can reconcile the stored record against the chain.
type PartialSuccessError struct {
	TxHash string
	Err    error
}

func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("%s (tx %s): %v", ErrPartialSuccess.Error(), e.TxHash, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause for errors.Is/As.
func (e *PartialSuccessError) Unwrap() []error {
	return []error{ErrPartialSuccess, e.Err}
}

// NewPartialSuccess wraps a store failure that happened after a confirmed chain call.
func NewPartialSuccess(txHash string, cause error) *PartialSuccessError {
	return &PartialSuccessError{TxHash: txHash, Err: cause}
}
