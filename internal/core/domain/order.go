package domain

// DeliveryDetails is the contact and address block submitted with a delivery
// order. Validated client-side before any request is sent.
type DeliveryDetails struct {
	Name                string `json:"name" validate:"required"`
	Email               string `json:"email" validate:"required,email"`
	Phone               string `json:"phone" validate:"required"`
	Address             string `json:"address" validate:"required"`
	SpecialInstructions string `json:"specialInstructions,omitempty" validate:"max=500"`
}

// OrderConfirmation is the backend's view of a submitted order. TokenNumber
// is the pickup/ticket code shown on the order-success screen.
type OrderConfirmation struct {
	ID                    string  `json:"id"`
	TokenNumber           string  `json:"tokenNumber"`
	Status                string  `json:"status"`
	TotalAmount           float64 `json:"totalAmount"`
	EstimatedDeliveryTime string  `json:"estimatedDeliveryTime,omitempty"`
}

// Reservation is a table reservation request.
type Reservation struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	PartySize  int    `json:"partySize" validate:"required,min=1"`
	Date       string `json:"date" validate:"required"`
	Time       string `json:"time" validate:"required"`
	OccasionID string `json:"occasionId,omitempty"`
}

// ReservationConfirmation is returned by the backend for an accepted
// reservation.
type ReservationConfirmation struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Table  string `json:"table,omitempty"`
}
