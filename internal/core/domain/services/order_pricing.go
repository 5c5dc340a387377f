package services

import (
	"errors"
	"fmt"
	"math"

	"movers/internal/core/domain/model/order"
	"movers/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderPricing computes the cost of a move.
type OrderPricing struct{}

func NewOrderPricing() OrderPricing {
	return OrderPricing{}
}

// ComputeCost returns rate * distanceKm * durationHours rounded to the currency
// precision. Negative or non-finite operands fail with a validation error.
//
//	cost, _ := pricing.ComputeCost(decimal.RequireFromString("1.50"), 12, 3) // 54.00
func (OrderPricing) ComputeCost(rate decimal.Decimal, distanceKm, durationHours float64) (decimal.Decimal, error) {
	var err error
	if rate.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("rate", fmt.Errorf("%s is negative", rate)))
	}
	if e := checkOperand("distance", distanceKm); e != nil {
		err = errors.Join(err, e)
	}
	if e := checkOperand("duration", durationHours); e != nil {
		err = errors.Join(err, e)
	}
	if err != nil {
		return decimal.Zero, err
	}

	cost := rate.
		Mul(decimal.NewFromFloat(distanceKm)).
		Mul(decimal.NewFromFloat(durationHours))

	return cost.Round(order.CurrencyPrecision), nil
}

func checkOperand(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not a finite number", v))
	}
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is negative", v))
	}
	return nil
}
