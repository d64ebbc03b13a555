package cart

import (
	"testing"

	"github.com/google/uuid"
)

func mustAdd(t *testing.T, e *Engine, item LineItem) {
	t.Helper()
	if err := e.Add(item); err != nil {
		t.Fatalf("add %v: %v", item, err)
	}
}

func TestAddMergesOnIdentityKey(t *testing.T) {
	productID := uuid.New()
	e := NewEngine()

	for _, qty := range []int{1, 2, 4} {
		mustAdd(t, e, LineItem{ProductID: productID, Size: "M", Color: "Black", UnitPriceMinor: 1000, Quantity: qty})
	}

	if len(e.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(e.Items))
	}
	if e.Items[0].Quantity != 7 {
		t.Fatalf("merged quantity: got %d want 7", e.Items[0].Quantity)
	}
}

func TestAddDistinctVariantsStaySeparate(t *testing.T) {
	productID := uuid.New()
	e := NewEngine()

	mustAdd(t, e, LineItem{ProductID: productID, Size: "M", Color: "Black", UnitPriceMinor: 1000, Quantity: 1})
	mustAdd(t, e, LineItem{ProductID: productID, Size: "L", Color: "Black", UnitPriceMinor: 1000, Quantity: 1})
	mustAdd(t, e, LineItem{ProductID: productID, Size: "M", Color: "Navy", UnitPriceMinor: 1000, Quantity: 1})

	if len(e.Items) != 3 {
		t.Fatalf("expected three lines, got %d", len(e.Items))
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	e := NewEngine()
	item := LineItem{ProductID: uuid.New(), Size: "M", Color: "Black", UnitPriceMinor: 1000}

	for _, qty := range []int{0, -1} {
		item.Quantity = qty
		if err := e.Add(item); err == nil {
			t.Fatalf("expected error adding quantity %d", qty)
		}
	}
	if len(e.Items) != 0 {
		t.Fatalf("rejected add mutated the cart: %d lines", len(e.Items))
	}
}

func TestSetQuantityBelowOneRemoves(t *testing.T) {
	productID := uuid.New()
	key := Key{ProductID: productID, Size: "M", Color: "Black"}

	for _, qty := range []int{0, -1} {
		e := NewEngine()
		mustAdd(t, e, LineItem{ProductID: productID, Size: "M", Color: "Black", UnitPriceMinor: 1000, Quantity: 3})

		e.SetQuantity(key, qty)

		if len(e.Items) != 0 {
			t.Fatalf("SetQuantity(%d) should remove the line, got %d lines", qty, len(e.Items))
		}
	}
}

func TestSetQuantityIsAbsolute(t *testing.T) {
	productID := uuid.New()
	e := NewEngine()
	mustAdd(t, e, LineItem{ProductID: productID, Size: "M", Color: "Black", UnitPriceMinor: 1000, Quantity: 3})

	e.SetQuantity(Key{ProductID: productID, Size: "M", Color: "Black"}, 5)

	if e.Items[0].Quantity != 5 {
		t.Fatalf("quantity: got %d want 5", e.Items[0].Quantity)
	}
}

func TestSetQuantityUnknownKeyIsNoop(t *testing.T) {
	productID := uuid.New()
	e := NewEngine()
	mustAdd(t, e, LineItem{ProductID: productID, Size: "M", Color: "Black", UnitPriceMinor: 1000, Quantity: 3})

	e.SetQuantity(Key{ProductID: uuid.New(), Size: "M", Color: "Black"}, 9)

	if len(e.Items) != 1 || e.Items[0].Quantity != 3 {
		t.Fatalf("cart changed on unknown key: %+v", e.Items)
	}
}

func TestRemoveUnknownKeyIsNoop(t *testing.T) {
	productID := uuid.New()
	e := NewEngine()
	mustAdd(t, e, LineItem{ProductID: productID, Size: "M", Color: "Black", UnitPriceMinor: 1000, Quantity: 1})

	e.Remove(Key{ProductID: productID, Size: "XL", Color: "Black"})

	if len(e.Items) != 1 {
		t.Fatalf("expected one line after removing unknown key, got %d", len(e.Items))
	}
}

func TestSubtotalHoldsAcrossMutations(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	e := NewEngine()

	verify := func(step string) {
		t.Helper()
		var want int
		for _, item := range e.Items {
			want += item.UnitPriceMinor * item.Quantity
		}
		if got := e.SubtotalMinor(); got != want {
			t.Fatalf("%s: subtotal got %d want %d", step, got, want)
		}
	}

	mustAdd(t, e, LineItem{ProductID: productA, Size: "M", Color: "Black", UnitPriceMinor: 1000, Quantity: 2})
	verify("after first add")

	mustAdd(t, e, LineItem{ProductID: productB, Size: "L", Color: "White", UnitPriceMinor: 3000, Quantity: 1})
	verify("after second add")

	e.SetQuantity(Key{ProductID: productA, Size: "M", Color: "Black"}, 4)
	verify("after update")

	e.Remove(Key{ProductID: productB, Size: "L", Color: "White"})
	verify("after remove")
}

func TestClearEmptiesCart(t *testing.T) {
	e := NewEngine()
	mustAdd(t, e, LineItem{ProductID: uuid.New(), Size: "M", Color: "Black", UnitPriceMinor: 1000, Quantity: 2})
	mustAdd(t, e, LineItem{ProductID: uuid.New(), Size: "S", Color: "Cream", UnitPriceMinor: 12999, Quantity: 1})

	e.Clear()

	if len(e.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(e.Items))
	}
	if e.TotalItems() != 0 {
		t.Fatalf("total items: got %d want 0", e.TotalItems())
	}
}

func TestTotalItemsSumsQuantities(t *testing.T) {
	e := NewEngine()
	mustAdd(t, e, LineItem{ProductID: uuid.New(), Size: "M", Color: "Black", UnitPriceMinor: 1000, Quantity: 2})
	mustAdd(t, e, LineItem{ProductID: uuid.New(), Size: "L", Color: "White", UnitPriceMinor: 3000, Quantity: 3})

	if got := e.TotalItems(); got != 5 {
		t.Fatalf("total items: got %d want 5", got)
	}
}
