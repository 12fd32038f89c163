package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// String returns the amount rounded to cents
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Cents converts an engine float into a decimal rounded to cents. Non-finite
// values become zero; callers are expected to have discarded them already.
func Cents(value float64) decimal.Decimal {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero
	}
	return NewMoney(value).Round().Decimal
}

// Rate converts a fraction (probability or rate) into a decimal with four
// places, enough to show basis points.
func Rate(value float64) decimal.Decimal {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value).Round(4)
}

// Float returns d as a float64 for the simulation hot loop.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// FloatOr returns *d as a float64, or fallback when d is nil.
func FloatOr(d *decimal.Decimal, fallback float64) float64 {
	if d == nil {
		return fallback
	}
	return d.InexactFloat64()
}
