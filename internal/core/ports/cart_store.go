package ports

import (
	"context"

	"github.com/funnfood/storefront/internal/core/domain"
)

// CheckoutResult is returned by the store after a successful order
// submission.
type CheckoutResult struct {
	OrderID     string
	TokenNumber string
	Status      string
	TotalAmount float64
}

// CartStore maintains line items for the active browsing session, derives
// checkout totals, and gates checkout on an authenticated session.
type CartStore interface {
	// Restore loads the persisted cart. Corrupt persisted data is purged and
	// treated as an empty cart.
	Restore(ctx context.Context)
	// AddItem merges the catalog snapshot into an existing line by item ID or
	// appends a new line with quantity 1. Persists after the mutation.
	AddItem(ctx context.Context, item domain.CatalogItem) error
	// SetQuantity overwrites a line's quantity; <= 0 removes the line.
	// Unknown IDs are a no-op.
	SetQuantity(ctx context.Context, itemID string, quantity int) error
	// RemoveItem removes the line if present; no-op otherwise.
	RemoveItem(ctx context.Context, itemID string) error
	// Clear empties all lines.
	Clear(ctx context.Context) error
	// Lines returns a copy of the current lines in insertion order.
	Lines() []domain.CartLine
	// Totals recomputes the derived amounts. Pure; safe on an empty cart.
	Totals() domain.Totals
	// Checkout submits the cart as a delivery order. The cart is cleared only
	// on a success response; any failure leaves it untouched.
	Checkout(ctx context.Context, details domain.DeliveryDetails) (*CheckoutResult, error)
}
