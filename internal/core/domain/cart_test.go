package domain

import "testing"

func item(id, name string, price float64) CatalogItem {
	return CatalogItem{ID: id, Name: name, Price: price}
}

// ---------------------------------------------------------------------------
// Line merging
// ---------------------------------------------------------------------------

func TestCart_Add_MergesByItemID(t *testing.T) {
	var c Cart
	for i := 0; i < 5; i++ {
		c.Add(item("1", "Margherita", 10))
	}

	if len(c.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", c.Lines[0].Quantity)
	}
}

func TestCart_Add_PreservesInsertionOrder(t *testing.T) {
	var c Cart
	c.Add(item("2", "Tiramisu", 6))
	c.Add(item("1", "Margherita", 10))
	c.Add(item("3", "Espresso", 2.5))
	c.Add(item("1", "Margherita", 10))

	want := []string{"2", "1", "3"}
	if len(c.Lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(c.Lines))
	}
	for i, id := range want {
		if c.Lines[i].ItemID != id {
			t.Errorf("line %d: expected item %s, got %s", i, id, c.Lines[i].ItemID)
		}
	}
}

func TestCart_Add_SnapshotsPriceAtAddTime(t *testing.T) {
	var c Cart
	c.Add(item("1", "Margherita", 10))
	// A later catalog price change must not touch the existing line.
	c.Add(item("1", "Margherita", 12))

	if c.Lines[0].UnitPrice != 10 {
		t.Errorf("expected snapshot price 10, got %v", c.Lines[0].UnitPrice)
	}
	if c.Lines[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", c.Lines[0].Quantity)
	}
}

// ---------------------------------------------------------------------------
// Quantity updates and removal
// ---------------------------------------------------------------------------

func TestCart_SetQuantity_ZeroRemovesLine(t *testing.T) {
	a, b := Cart{}, Cart{}
	a.Add(item("1", "Margherita", 10))
	b.Add(item("1", "Margherita", 10))

	a.SetQuantity("1", 0)
	b.Remove("1")

	if len(a.Lines) != 0 || len(b.Lines) != 0 {
		t.Errorf("SetQuantity(id, 0) and Remove(id) must both empty the cart: %d vs %d lines", len(a.Lines), len(b.Lines))
	}
}

func TestCart_SetQuantity_UnknownIDIsNoop(t *testing.T) {
	var c Cart
	c.Add(item("1", "Margherita", 10))
	c.SetQuantity("99", 3)

	if len(c.Lines) != 1 || c.Lines[0].Quantity != 1 {
		t.Errorf("unknown id must not change the cart: %+v", c.Lines)
	}
}

func TestCart_Remove_KeepsRemainingOrder(t *testing.T) {
	var c Cart
	c.Add(item("1", "a", 1))
	c.Add(item("2", "b", 2))
	c.Add(item("3", "c", 3))
	c.Remove("2")

	if len(c.Lines) != 2 || c.Lines[0].ItemID != "1" || c.Lines[1].ItemID != "3" {
		t.Errorf("unexpected lines after remove: %+v", c.Lines)
	}
}

// ---------------------------------------------------------------------------
// Totals
// ---------------------------------------------------------------------------

func TestCart_Totals_ReferenceScenario(t *testing.T) {
	var c Cart
	c.Add(item("1", "Margherita", 10.00))
	c.SetQuantity("1", 2)
	c.Add(item("2", "Espresso", 5.00))

	got := c.Totals(0.10, 5.00)

	if got.Subtotal != 25.00 {
		t.Errorf("subtotal: expected 25.00, got %v", got.Subtotal)
	}
	if got.Tax != 2.50 {
		t.Errorf("tax: expected 2.50, got %v", got.Tax)
	}
	if got.DeliveryFee != 5.00 {
		t.Errorf("delivery fee: expected 5.00, got %v", got.DeliveryFee)
	}
	if got.Total != 32.50 {
		t.Errorf("total: expected 32.50, got %v", got.Total)
	}
}

func TestCart_Totals_EmptyCartIsAllZero(t *testing.T) {
	var c Cart
	got := c.Totals(0.10, 5.00)

	if got.Subtotal != 0 || got.Tax != 0 || got.DeliveryFee != 0 || got.Total != 0 {
		t.Errorf("empty cart totals must be zero, got %+v", got)
	}
}

func TestCart_Totals_Pure(t *testing.T) {
	var c Cart
	c.Add(item("1", "Margherita", 9.99))
	c.SetQuantity("1", 3)

	first := c.Totals(0.08, 3.50)
	second := c.Totals(0.08, 3.50)

	if first != second {
		t.Errorf("Totals must be pure: %+v vs %+v", first, second)
	}
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 3 {
		t.Errorf("Totals must not mutate the cart: %+v", c.Lines)
	}
}

func TestCart_Totals_RoundsToCents(t *testing.T) {
	var c Cart
	c.Add(item("1", "Espresso", 3.33))
	c.SetQuantity("1", 3) // 9.99 subtotal, 0.999 tax at 10%

	got := c.Totals(0.10, 0)
	if got.Tax != 1.00 {
		t.Errorf("tax: expected 1.00, got %v", got.Tax)
	}
}

func TestCart_Units(t *testing.T) {
	var c Cart
	c.Add(item("1", "a", 1))
	c.SetQuantity("1", 2)
	c.Add(item("2", "b", 2))

	if got := c.Units(); got != 3 {
		t.Errorf("expected 3 units, got %d", got)
	}
}
