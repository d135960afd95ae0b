// Package money wraps shopspring/decimal with the small set of operations
// the pricing pipeline needs. Prices never pass through binary floats.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var zero = decimal.Zero

// Zero returns the zero amount.
func Zero() decimal.Decimal {
	return zero
}

// Parse validates a client-supplied amount at the boundary. Malformed or
// negative input is rejected here so the calculators can assume well-formed
// decimals.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zero, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return zero, fmt.Errorf("malformed amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return zero, fmt.Errorf("amount must not be negative, got %s", d)
	}
	return d, nil
}

// Percent computes amount * (pct / 100) exactly.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct.Div(decimal.NewFromInt(100)))
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
