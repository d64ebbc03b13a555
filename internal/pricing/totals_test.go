package pricing

import "testing"

func TestComputeFromSubtotalShippingBoundary(t *testing.T) {
	cases := []struct {
		name         string
		subtotal     int
		wantShipping int
	}{
		{name: "below threshold", subtotal: 4999, wantShipping: 499},
		{name: "at threshold", subtotal: 5000, wantShipping: 0},
		{name: "above threshold", subtotal: 12999, wantShipping: 0},
		{name: "zero subtotal", subtotal: 0, wantShipping: 499},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeFromSubtotal(tc.subtotal)
			if got.ShippingMinor != tc.wantShipping {
				t.Fatalf("shipping for subtotal %d: got %d want %d", tc.subtotal, got.ShippingMinor, tc.wantShipping)
			}
		})
	}
}

func TestComputeFromSubtotalTaxRounding(t *testing.T) {
	cases := []struct {
		name     string
		subtotal int
		wantTax  int
	}{
		{name: "exact", subtotal: 1000, wantTax: 180},
		{name: "rounds down", subtotal: 1001, wantTax: 180},
		{name: "half rounds up", subtotal: 1005, wantTax: 181},
		{name: "large", subtotal: 34999, wantTax: 6300},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeFromSubtotal(tc.subtotal)
			if got.TaxMinor != tc.wantTax {
				t.Fatalf("tax for subtotal %d: got %d want %d", tc.subtotal, got.TaxMinor, tc.wantTax)
			}
		})
	}
}

func TestComputeEndToEnd(t *testing.T) {
	lines := []Line{
		{UnitPriceMinor: 1000, Quantity: 2},
		{UnitPriceMinor: 3000, Quantity: 1},
	}

	got := Compute(lines)

	if got.SubtotalMinor != 5000 {
		t.Fatalf("subtotal: got %d want 5000", got.SubtotalMinor)
	}
	if got.ShippingMinor != 0 {
		t.Fatalf("shipping: got %d want 0", got.ShippingMinor)
	}
	if got.TaxMinor != 900 {
		t.Fatalf("tax: got %d want 900", got.TaxMinor)
	}
	if got.TotalMinor != 5900 {
		t.Fatalf("total: got %d want 5900", got.TotalMinor)
	}
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil)

	if got.SubtotalMinor != 0 {
		t.Fatalf("subtotal: got %d want 0", got.SubtotalMinor)
	}
	if got.TotalMinor != got.ShippingMinor+got.TaxMinor {
		t.Fatalf("total %d does not equal shipping %d + tax %d", got.TotalMinor, got.ShippingMinor, got.TaxMinor)
	}
}
