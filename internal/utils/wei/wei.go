// Package wei converts decimal currency amounts to and from the chain's
// integer minor units. 1 major unit = 10^18 minor units (wei).
package wei

import (
	"fmt"
	"math/big"

	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Decimals is the fixed-point scale of the chain's minor unit.
const Decimals = 18

// FromDecimal converts a positive decimal amount of major units into wei.
// Amounts with more than 18 fractional digits are rejected rather than
// rounded: a lossy conversion would make the stored price and the on-chain
// price disagree.
func FromDecimal(amount decimal.Decimal) (*big.Int, error) {
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	shifted := amount.Shift(Decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("%w: amount %s has more than %d fractional digits", apperrors.ErrValidation, amount, Decimals)
	}
	return shifted.BigInt(), nil
}

// ToDecimal converts wei back into major units. The conversion is exact.
func ToDecimal(w *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(w, -Decimals)
}
