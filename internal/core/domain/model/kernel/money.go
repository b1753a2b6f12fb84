package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Money represents a monetary amount in minor currency units.
// Prices and totals in the marketplace are whole pesos, so arithmetic stays
// exact integer math with no floating point involved.
//
// Money is a value object: operations return new values and never mutate.
// Negative amounts are rejected by the constructor; the zero value is a
// legitimate amount of zero.
type Money int64

// NewMoney creates a Money value from an amount in minor units.
// Returns an error if the amount is negative.
//
// Example:
//
//	price, err := kernel.NewMoney(1390)
//	if err != nil {
//	    // amount was negative
//	}
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}

	return Money(amount), nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// MulQuantity returns the amount multiplied by an item quantity.
func (m Money) MulQuantity(quantity int) Money {
	return m * Money(quantity)
}

// Int64 returns the raw amount in minor units.
func (m Money) Int64() int64 {
	return int64(m)
}

// String renders the amount for logs and messages.
func (m Money) String() string {
	return fmt.Sprintf("%d", int64(m))
}
