// Package money provides fixed-point decimal arithmetic for monetary values
// and percentages. All engine arithmetic must route through this package so
// totals are reproducible: binary floats never enter a computation, and
// rounding happens exactly once, at the final step of a derived value.
package money

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary or percentage value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// CurrencyScale is the number of fractional digits kept on persisted
// currency amounts. Percentages use the same scale.
const CurrencyScale = 2

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// New creates a Money value from integer major units.
func New(units int64) Money {
	return decimal.NewFromInt(units)
}

// FromString creates a Money value from a decimal string.
// This is the preferred constructor for values crossing an API boundary.
func FromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustParse creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustParse(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Round applies banker's (half-to-even) rounding at currency scale.
// Call it exactly once, on the final value of a derived computation.
// Intermediate values must stay unrounded.
func Round(m Money) Money {
	return m.RoundBank(CurrencyScale)
}

// PercentOf returns amount * pct / 100, unrounded.
// The caller rounds the final figure it derives from this.
func PercentOf(amount, pct Money) Money {
	return amount.Mul(pct).Div(decimal.NewFromInt(100))
}

// ClampZero returns m, or zero when m is negative.
// The payment ledger uses this as its single documented clamp.
func ClampZero(m Money) Money {
	if m.IsNegative() {
		return decimal.Zero
	}
	return m
}

// IsValidPercent reports whether p lies in [0, 100].
func IsValidPercent(p Money) bool {
	return !p.IsNegative() && p.LessThanOrEqual(decimal.NewFromInt(100))
}
