package cart

import (
	"github.com/google/uuid"

	"github.com/bhumi-studio/bhumi-backend/internal/pricing"
	pkgerrors "github.com/bhumi-studio/bhumi-backend/pkg/errors"
)

// LineItem is one (product, size, color) selection with a frozen unit price.
// The unit price is copied from the catalog when the item is added and never
// re-fetched, so later catalog price changes do not move an existing cart.
type LineItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	ProductImage   string    `json:"product_image"`
	UnitPriceMinor int       `json:"unit_price_minor"`
	Size           string    `json:"size"`
	Color          string    `json:"color"`
	Quantity       int       `json:"quantity"`
}

// Key is the composite identity of a line item within a cart. At most one
// line item exists per key; adding the same key again merges quantities.
type Key struct {
	ProductID uuid.UUID `json:"product_id"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
}

func (li LineItem) key() Key {
	return Key{ProductID: li.ProductID, Size: li.Size, Color: li.Color}
}

// Engine holds the ordered line items of a single session cart. All
// operations are synchronous and in-memory; the engine performs no catalog
// validation and accepts whatever size/color strings the caller resolved.
type Engine struct {
	Items []LineItem `json:"items"`
}

// NewEngine returns an empty cart.
func NewEngine() *Engine {
	return &Engine{}
}

// Add merges the item into the cart. If a line with the same identity key
// exists its quantity is incremented, otherwise the line is appended.
// Quantities below 1 are rejected without mutating the cart.
func (e *Engine) Add(item LineItem) error {
	if item.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	key := item.key()
	for i := range e.Items {
		if e.Items[i].key() == key {
			e.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	e.Items = append(e.Items, item)
	return nil
}

// SetQuantity sets the quantity of the line with the given key to exactly
// quantity. Values below 1 remove the line. Unknown keys are a no-op.
func (e *Engine) SetQuantity(key Key, quantity int) {
	for i := range e.Items {
		if e.Items[i].key() != key {
			continue
		}
		if quantity < 1 {
			e.Items = append(e.Items[:i], e.Items[i+1:]...)
			return
		}
		e.Items[i].Quantity = quantity
		return
	}
}

// Remove deletes the line with the given key if present.
func (e *Engine) Remove(key Key) {
	for i := range e.Items {
		if e.Items[i].key() == key {
			e.Items = append(e.Items[:i], e.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (e *Engine) Clear() {
	e.Items = nil
}

// TotalItems is the sum of quantities across all lines.
func (e *Engine) TotalItems() int {
	var total int
	for _, item := range e.Items {
		total += item.Quantity
	}
	return total
}

// SubtotalMinor is the sum of unit price times quantity across all lines.
func (e *Engine) SubtotalMinor() int {
	return e.Totals().SubtotalMinor
}

// Totals derives the full price breakdown for the current lines.
func (e *Engine) Totals() pricing.Totals {
	lines := make([]pricing.Line, 0, len(e.Items))
	for _, item := range e.Items {
		lines = append(lines, pricing.Line{
			UnitPriceMinor: item.UnitPriceMinor,
			Quantity:       item.Quantity,
		})
	}
	return pricing.Compute(lines)
}
