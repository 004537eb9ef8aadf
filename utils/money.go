package utils

import (
	"github.com/shopspring/decimal"
)

// CommissionAmount computes the commission owed on an order total at
// the given percentage rate, rounded half-up to two decimal places.
// Float multiplication alone drifts on amounts like 4999.50 * 7.5%, so
// the math runs through decimals and only the final value comes back
// as a float64.
func CommissionAmount(orderTotal, ratePercent float64) float64 {
	total := decimal.NewFromFloat(orderTotal)
	rate := decimal.NewFromFloat(ratePercent)

	amount := total.Mul(rate).Div(decimal.NewFromInt(100))
	result, _ := amount.Round(2).Float64()
	return result
}

// RoundMoney rounds a monetary value half-up to two decimal places.
func RoundMoney(value float64) float64 {
	result, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return result
}
