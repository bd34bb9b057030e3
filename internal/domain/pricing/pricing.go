// Package pricing computes tax-inclusive prices and line totals.
//
// Both the browser preview and the persisted values must agree digit for
// digit, so rounding happens exactly once, after multiplication, half away
// from zero at two decimals.
package pricing

import "math"

// round2 rounds half away from zero at two decimal places. math.Round
// implements exactly that tie-break.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FinalPrice derives the tax-inclusive unit price from a net price and a VAT
// percentage. NaN inputs coerce to 0; the function never panics.
func FinalPrice(price, vatPercent float64) float64 {
	if math.IsNaN(price) {
		price = 0
	}
	if math.IsNaN(vatPercent) {
		vatPercent = 0
	}
	return round2(price * (1 + vatPercent/100))
}

// LineTotal multiplies a final price by a quantity and rounds once.
func LineTotal(finalPrice, quantity float64) float64 {
	if math.IsNaN(finalPrice) {
		finalPrice = 0
	}
	if math.IsNaN(quantity) {
		quantity = 0
	}
	return round2(finalPrice * quantity)
}
