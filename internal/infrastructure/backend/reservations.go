package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/funnfood/storefront/internal/core/domain"
)

const pathReservations = "/reservations"

// SubmitReservation books a table. The request is validated locally before
// anything is sent; requires an authenticated session.
func (c *Client) SubmitReservation(ctx context.Context, in domain.Reservation) (*domain.ReservationConfirmation, error) {
	if err := c.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("submit reservation: %w: %w", domain.ErrInvalidInput, err)
	}
	var resp domain.ReservationConfirmation
	if err := c.do(ctx, "submit_reservation", http.MethodPost, pathReservations, in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
