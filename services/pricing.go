// Package services holds the business rules behind every route: order
// placement and pricing, the status lifecycle, and the CRUD operations on
// users, restaurants and foods.
package services

import (
	"github.com/shopspring/decimal"
)

// TaxRate is applied to the order subtotal.
var TaxRate = decimal.NewFromFloat(0.10)

// Line is one priced line of a cart.
type Line struct {
	Price    float64
	Quantity int
}

// Quote is the breakdown of an order's charges.
type Quote struct {
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	Total       float64
}

// PriceLines computes subtotal, tax and total for the given lines. Tax is
// rounded half away from zero to whole currency units.
func PriceLines(lines []Line, deliveryFee float64) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	fee := decimal.NewFromFloat(deliveryFee)
	tax := subtotal.Mul(TaxRate).Round(0)
	total := subtotal.Add(fee).Add(tax)

	return Quote{
		Subtotal:    subtotal.InexactFloat64(),
		DeliveryFee: fee.InexactFloat64(),
		Tax:         tax.InexactFloat64(),
		Total:       total.InexactFloat64(),
	}
}

// BelowMinimum reports whether subtotal falls short of a positive minimum.
func BelowMinimum(subtotal, minimum float64) bool {
	if minimum <= 0 {
		return false
	}
	return decimal.NewFromFloat(subtotal).LessThan(decimal.NewFromFloat(minimum))
}

// formatAmount renders an amount without trailing zeros.
func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).String()
}
