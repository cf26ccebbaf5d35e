package kernel

import (
	"fmt"
	"math"

	"pizzeria/internal/pkg/errs"
)

// centsPerUnit is the fixed scale of all monetary amounts.
const centsPerUnit = 100

// Money is a value object representing a non-negative monetary amount with
// two-decimal precision. Amounts are stored as an integer number of cents so
// that addition never accumulates floating-point error.
//
// The zero value of Money is a valid amount of 0.00, so no constructor guard
// is needed. Money is immutable and safe for concurrent use.
//
// Example usage:
//
//	price, err := kernel.NewMoneyFromFloat(10.50)
//	if err != nil {
//	    // handle validation error
//	}
//	total := price.Add(surcharge)
//	fmt.Println(total) // "13.50"
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money amount from an integer number of cents.
// Negative amounts are rejected.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d cents is negative", cents),
		)
	}

	return Money{cents: cents}, nil
}

// NewMoneyFromFloat creates a Money amount from a decimal value.
// The value must be non-negative and must not carry more than two decimal
// places; sub-cent precision is rejected rather than silently rounded.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%v is not a non-negative amount", amount),
		)
	}

	scaled := amount * centsPerUnit
	cents := math.Round(scaled)
	if math.Abs(scaled-cents) > 1e-6 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%v has more than two decimal places", amount),
		)
	}

	return Money{cents: int64(cents)}, nil
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount as a decimal value.
func (m Money) Float64() float64 {
	return float64(m.cents) / centsPerUnit
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// IsZero reports whether the amount is exactly 0.00.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the amount formatted with two decimal places, e.g. "10.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/centsPerUnit, m.cents%centsPerUnit)
}
