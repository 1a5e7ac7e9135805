package domain

import "math"

// CartLine is one catalog item plus quantity held in the cart. Name and
// UnitPrice are copied from the catalog at add-time and never refreshed; a
// price change on the backend does not propagate into an existing line.
type CartLine struct {
	ItemID    string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the ordered collection of lines for the current browsing session.
// Order is insertion order and is used only for display. At most one line
// exists per distinct ItemID.
type Cart struct {
	Lines []CartLine `json:"items"`
}

// Totals are derived on every read, never stored.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
}

// Add merges the item into an existing line by ItemID, or appends a new line
// with quantity 1.
func (c *Cart) Add(item CatalogItem) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == item.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  1,
	})
}

// SetQuantity overwrites the quantity of the line with the given ItemID.
// A quantity <= 0 removes the line. Unknown IDs are a no-op, not an error.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line with the given ItemID, preserving the order of the
// remaining lines. No-op if absent.
func (c *Cart) Remove(itemID string) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties all lines.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Empty reports whether the cart holds no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Units returns the total number of units across all lines (the cart badge
// count, not the number of lines).
func (c *Cart) Units() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Totals computes subtotal, tax, delivery fee and grand total. The delivery
// fee applies flat when the cart is non-empty and is zero otherwise. All
// amounts are rounded to cents.
func (c *Cart) Totals(taxRate, deliveryFee float64) Totals {
	var t Totals
	for _, l := range c.Lines {
		t.Subtotal += l.UnitPrice * float64(l.Quantity)
	}
	t.Subtotal = roundCents(t.Subtotal)
	t.Tax = roundCents(t.Subtotal * taxRate)
	if !c.Empty() {
		t.DeliveryFee = roundCents(deliveryFee)
	}
	t.Total = roundCents(t.Subtotal + t.Tax + t.DeliveryFee)
	return t
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
