package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/funnfood/storefront/internal/core/domain"
	"github.com/funnfood/storefront/internal/core/ports"
)

const pathOrders = "/orders"

type orderResponse struct {
	ID                    json.Number `json:"id"`
	TokenNumber           string      `json:"tokenNumber"`
	Status                string      `json:"status"`
	TotalAmount           float64     `json:"totalAmount"`
	EstimatedDeliveryTime string      `json:"estimatedDeliveryTime"`
}

func (r orderResponse) toDomain() domain.OrderConfirmation {
	return domain.OrderConfirmation{
		ID:                    r.ID.String(),
		TokenNumber:           r.TokenNumber,
		Status:                r.Status,
		TotalAmount:           r.TotalAmount,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
	}
}

// SubmitOrder creates a delivery order from the cart lines and delivery
// details. Requires an authenticated session; a 401 purges it and surfaces
// domain.ErrUnauthorized.
func (c *Client) SubmitOrder(ctx context.Context, in ports.OrderInput) (*domain.OrderConfirmation, error) {
	var resp orderResponse
	if err := c.do(ctx, "submit_order", http.MethodPost, pathOrders, in, &resp); err != nil {
		return nil, err
	}
	conf := resp.toDomain()
	return &conf, nil
}

// GetOrder fetches a previously submitted order by id (the order-success
// screen flow).
func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.OrderConfirmation, error) {
	var resp orderResponse
	if err := c.do(ctx, "get_order", http.MethodGet, pathOrders+"/"+orderID, nil, &resp); err != nil {
		return nil, err
	}
	conf := resp.toDomain()
	return &conf, nil
}
