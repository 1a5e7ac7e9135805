package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/funnfood/storefront/internal/core/domain"
	"github.com/funnfood/storefront/internal/core/ports"
	"github.com/funnfood/storefront/internal/metrics"
)

const keyCart = "cart"

// Pricing holds the checkout rates applied on top of the line subtotal.
type Pricing struct {
	TaxRate     float64
	DeliveryFee float64
}

// CartStore maintains the line items for the active browsing session,
// persists them after every mutation, and gates checkout on an authenticated
// session. Not safe for concurrent use; the caller owns double-submission
// guarding around Checkout.
type CartStore struct {
	storage  ports.Storage
	sessions ports.SessionStore
	orders   ports.OrderAPI
	validate *validator.Validate
	pricing  Pricing
	log      zerolog.Logger
	cart     domain.Cart
}

func NewCartStore(storage ports.Storage, sessions ports.SessionStore, orders ports.OrderAPI, pricing Pricing, log zerolog.Logger) *CartStore {
	return &CartStore{
		storage:  storage,
		sessions: sessions,
		orders:   orders,
		validate: validator.New(),
		pricing:  pricing,
		log:      log,
	}
}

// Restore loads the persisted cart. A corrupt persisted entry is purged and
// treated as an empty cart; Restore never fails.
func (c *CartStore) Restore(ctx context.Context) {
	raw, err := c.storage.Get(ctx, keyCart)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.log.Warn().Err(err).Msg("cart restore: storage read failed")
		}
		c.cart.Clear()
		return
	}

	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		c.log.Warn().Err(err).Msg("cart restore: corrupt entry purged")
		if derr := c.storage.Delete(ctx, keyCart); derr != nil {
			c.log.Error().Err(derr).Msg("cart restore: purge failed")
		}
		c.cart.Clear()
		return
	}
	c.cart.Lines = lines
}

// AddItem merges the catalog snapshot into the cart and persists. The name
// and price stored on the line are frozen at add-time.
func (c *CartStore) AddItem(ctx context.Context, item domain.CatalogItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	c.cart.Add(item)
	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	return c.persist(ctx)
}

// SetQuantity overwrites a line's quantity; a quantity <= 0 removes the
// line. Unknown item IDs are a no-op, not an error.
func (c *CartStore) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	c.cart.SetQuantity(itemID, quantity)
	metrics.CartMutationsTotal.WithLabelValues("set_quantity").Inc()
	return c.persist(ctx)
}

// RemoveItem removes the line if present; no-op otherwise.
func (c *CartStore) RemoveItem(ctx context.Context, itemID string) error {
	c.cart.Remove(itemID)
	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return c.persist(ctx)
}

// Clear empties all lines.
func (c *CartStore) Clear(ctx context.Context) error {
	c.cart.Clear()
	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	return c.persist(ctx)
}

// Lines returns a copy of the current lines in insertion order.
func (c *CartStore) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.cart.Lines))
	copy(out, c.cart.Lines)
	return out
}

// Totals recomputes the derived amounts on every call; nothing is cached.
func (c *CartStore) Totals() domain.Totals {
	return c.cart.Totals(c.pricing.TaxRate, c.pricing.DeliveryFee)
}

// Checkout submits the cart as a delivery order. Preconditions are checked
// before any network call: the cart must be non-empty and a session must be
// active. The cart is cleared only on a success response; a network failure
// or an authorization rejection leaves it untouched so the caller can retry
// after resolving the condition.
func (c *CartStore) Checkout(ctx context.Context, details domain.DeliveryDetails) (*ports.CheckoutResult, error) {
	if c.cart.Empty() {
		return nil, domain.ErrEmptyCart
	}
	if c.sessions.Current() == nil {
		return nil, domain.ErrNoSession
	}
	if err := c.validate.Struct(details); err != nil {
		return nil, fmt.Errorf("checkout: %w: %w", domain.ErrInvalidInput, err)
	}

	in := ports.OrderInput{
		Items:               make([]ports.OrderItemInput, 0, len(c.cart.Lines)),
		Name:                details.Name,
		Email:               details.Email,
		Phone:               details.Phone,
		Address:             details.Address,
		SpecialInstructions: details.SpecialInstructions,
	}
	for _, l := range c.cart.Lines {
		in.Items = append(in.Items, ports.OrderItemInput{
			ID:       l.ItemID,
			Name:     l.Name,
			Price:    l.UnitPrice,
			Quantity: l.Quantity,
		})
	}

	conf, err := c.orders.SubmitOrder(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			// The request layer has already purged the session; surface the
			// sign-in-again condition distinctly, never as a generic failure.
			metrics.OrdersSubmittedTotal.WithLabelValues("unauthorized").Inc()
			c.log.Warn().Msg("checkout rejected: session expired")
			return nil, err
		}
		metrics.OrdersSubmittedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("checkout: %w", err)
	}

	metrics.OrdersSubmittedTotal.WithLabelValues("ok").Inc()
	c.log.Info().Str("order_id", conf.ID).Str("token_number", conf.TokenNumber).Msg("order submitted")

	c.cart.Clear()
	if perr := c.persist(ctx); perr != nil {
		// The order is already placed; the confirmation must still reach the caller.
		c.log.Error().Err(perr).Msg("checkout: failed to persist cleared cart")
	}

	return &ports.CheckoutResult{
		OrderID:     conf.ID,
		TokenNumber: conf.TokenNumber,
		Status:      conf.Status,
		TotalAmount: conf.TotalAmount,
	}, nil
}

func (c *CartStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(c.cart.Lines)
	if err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	if err := c.storage.Set(ctx, keyCart, string(raw)); err != nil {
		return fmt.Errorf("persist cart: %w: %w", domain.ErrStorage, err)
	}
	return nil
}
