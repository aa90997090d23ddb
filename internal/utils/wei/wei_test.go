package wei_test

import (
	"math/big"
	"testing"

	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/utils/wei"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDecimal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantWei string
	}{
		{"one major unit", "1", "1000000000000000000"},
		{"one and a half", "1.5", "1500000000000000000"},
		{"smallest representable fraction", "0.000000000000000001", "1"},
		{"large face value", "1000000", "1000000000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wei.FromDecimal(decimal.RequireFromString(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.wantWei, got.String())
		})
	}
}

func TestFromDecimal_RejectsNonPositive(t *testing.T) {
	for _, in := range []string{"0", "-1", "-0.5"} {
		_, err := wei.FromDecimal(decimal.RequireFromString(in))
		assert.ErrorIs(t, err, apperrors.ErrValidation, "input %s", in)
	}
}

func TestFromDecimal_RejectsTooManyFractionalDigits(t *testing.T) {
	// 19 fractional digits cannot be represented in wei without rounding.
	_, err := wei.FromDecimal(decimal.RequireFromString("0.0000000000000000001"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRoundTrip(t *testing.T) {
	// Values with <= 18 fractional decimal digits must round-trip exactly.
	for _, in := range []string{"1.5", "10", "0.000000000000000001", "123456.789"} {
		d := decimal.RequireFromString(in)
		w, err := wei.FromDecimal(d)
		require.NoError(t, err)
		assert.True(t, wei.ToDecimal(w).Equal(d), "round trip of %s gave %s", in, wei.ToDecimal(w))
	}
}

func TestToDecimal(t *testing.T) {
	w, ok := new(big.Int).SetString("1500000000000000000", 10)
	assert.True(t, ok)
	assert.Equal(t, "1.5", wei.ToDecimal(w).String())
}
