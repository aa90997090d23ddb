package ethereum

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

type fakeRPCError struct {
	code int
	msg  string
}

func (e *fakeRPCError) Error() string  { return e.msg }
func (e *fakeRPCError) ErrorCode() int { return e.code }

func TestMapChainErr(t *testing.T) {
	testCases := []struct {
		name     string
		input    error
		sentinel error
	}{
		{
			name:     "nil stays nil",
			input:    nil,
			sentinel: nil,
		},
		{
			name:     "deadline exceeded maps to timeout",
			input:    fmt.Errorf("waiting for receipt: %w", context.DeadlineExceeded),
			sentinel: apperrors.ErrTimeout,
		},
		{
			name:     "rpc code 4001 maps to user rejected",
			input:    &fakeRPCError{code: 4001, msg: "denied by signer"},
			sentinel: apperrors.ErrUserRejected,
		},
		{
			name:     "execution reverted maps to reverted",
			input:    errors.New("execution reverted: Invoice not for sale"),
			sentinel: apperrors.ErrReverted,
		},
		{
			name:     "user denied message maps to user rejected",
			input:    errors.New("MetaMask Tx Signature: User denied transaction signature"),
			sentinel: apperrors.ErrUserRejected,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapChainErr(tc.input)
			if tc.sentinel == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tc.sentinel)
		})
	}
}

func TestMapChainErrUnknownStaysPlain(t *testing.T) {
	cause := errors.New("nonce too low")
	mapped := mapChainErr(cause)

	assert.ErrorIs(t, mapped, cause)
	assert.NotErrorIs(t, mapped, apperrors.ErrReverted)
	assert.NotErrorIs(t, mapped, apperrors.ErrUserRejected)
	assert.NotErrorIs(t, mapped, apperrors.ErrTimeout)
}

func TestParseTokenID(t *testing.T) {
	id, err := parseTokenID("42")
	assert.NoError(t, err)
	assert.Equal(t, "42", id.String())

	_, err = parseTokenID("not-a-number")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = parseTokenID("-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
