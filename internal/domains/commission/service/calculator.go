package service

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNegativeRent rejects aggregation inputs that would produce a
// meaningless commission.
var ErrNegativeRent = errors.New("rent amount must not be negative")

// Compute returns the platform commission for a single rent payment:
// rent * rate / 100, clamped to [floor, ceiling].
//
// Clamping happens per payment. Callers aggregating multiple payments must
// sum per-payment results (or replicate the clamp inside SQL), never clamp
// the summed total.
func Compute(rent, rate, floor, ceiling decimal.Decimal) (decimal.Decimal, error) {
	if rent.IsNegative() {
		return decimal.Zero, ErrNegativeRent
	}

	commission := rent.Mul(rate).Div(decimal.NewFromInt(100))

	if commission.LessThan(floor) {
		return floor, nil
	}
	if commission.GreaterThan(ceiling) {
		return ceiling, nil
	}
	return commission, nil
}
