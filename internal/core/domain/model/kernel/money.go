package kernel

import (
	"fmt"

	"tableside/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object for non-negative monetary amounts with two decimal
// places. It wraps github.com/shopspring/decimal so that menu prices, price
// snapshots, and order totals never accumulate binary floating-point error.
//
// Money is immutable; arithmetic methods return new values. The zero value is
// a valid zero amount, which keeps summation loops simple.
//
// Example usage:
//
//	price, err := kernel.NewMoneyFromString("10.00")
//	if err != nil {
//	    // handle error
//	}
//	total := price.MulInt(2).Add(fries) // 23.50
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a zero amount, the identity for Add.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoneyFromString parses a decimal string such as "10.00" into Money.
// Fails for unparsable input, negative amounts, and more than two decimal
// places.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return newMoney(d)
}

// NewMoneyFromDecimal wraps an existing decimal value, applying the same
// validation as NewMoneyFromString. Used when reconstructing amounts from
// persistence.
func NewMoneyFromDecimal(d decimal.Decimal) (Money, error) {
	return newMoney(d)
}

func newMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount",
			fmt.Errorf("%s is negative", d.String()))
	}
	if d.Exponent() < -2 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount",
			fmt.Errorf("%s has more than two decimal places", d.String()))
	}
	return Money{amount: d}, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulInt returns the amount multiplied by a non-negative integer factor,
// the line-total operation quantity × unit price.
func (m Money) MulInt(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Decimal returns the underlying decimal value for persistence mapping.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two decimal places, e.g. "23.50".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
