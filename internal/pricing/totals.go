package pricing

import (
	"github.com/shopspring/decimal"
)

// Monetary amounts are integer minor currency units throughout.
const (
	// FreeShippingThresholdMinor is the subtotal at or above which shipping is free.
	FreeShippingThresholdMinor = 5000

	// StandardShippingFeeMinor is the flat fee charged below the free-shipping threshold.
	StandardShippingFeeMinor = 499
)

// taxRate is applied to the subtotal, rounded half-up to the nearest minor unit.
var taxRate = decimal.NewFromFloat(0.18)

// Line is a priced quantity of a single cart or order line.
type Line struct {
	UnitPriceMinor int
	Quantity       int
}

// Totals is the full price breakdown for a set of lines.
type Totals struct {
	SubtotalMinor int `json:"subtotal_minor"`
	ShippingMinor int `json:"shipping_minor"`
	TaxMinor      int `json:"tax_minor"`
	TotalMinor    int `json:"total_minor"`
}

// Compute derives the order totals for the given lines.
//
// Checkout preview and order confirmation both go through this function so a
// shopper is never quoted one total and charged another. Order records persist
// the result at creation time and never recompute it.
func Compute(lines []Line) Totals {
	var subtotal int
	for _, line := range lines {
		subtotal += line.UnitPriceMinor * line.Quantity
	}
	return ComputeFromSubtotal(subtotal)
}

// ComputeFromSubtotal derives shipping, tax, and the grand total from a known
// subtotal. The free-shipping boundary is inclusive at the threshold.
func ComputeFromSubtotal(subtotalMinor int) Totals {
	shipping := StandardShippingFeeMinor
	if subtotalMinor >= FreeShippingThresholdMinor {
		shipping = 0
	}

	// decimal.Round rounds half away from zero, which is half-up for
	// non-negative subtotals.
	tax := int(decimal.NewFromInt(int64(subtotalMinor)).Mul(taxRate).Round(0).IntPart())

	return Totals{
		SubtotalMinor: subtotalMinor,
		ShippingMinor: shipping,
		TaxMinor:      tax,
		TotalMinor:    subtotalMinor + shipping + tax,
	}
}
