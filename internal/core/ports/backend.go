package ports

import (
	"context"

	"github.com/funnfood/storefront/internal/core/domain"
)

// SignInInput carries sign-in credentials. The credential header is never
// attached to the call that establishes it.
type SignInInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpInput carries registration details.
type SignUpInput struct {
	Username string   `json:"username" validate:"required,min=3"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles,omitempty"`
}

// SignUpResult mirrors the backend's registration envelope.
type SignUpResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthAPI is the authentication slice of the backend boundary.
// ForgotPassword is the one account operation callable anonymously.
type AuthAPI interface {
	SignIn(ctx context.Context, in SignInInput) (*domain.Session, error)
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)
	ForgotPassword(ctx context.Context, email string) error
}

// ProfileUpdateInput carries the editable profile fields.
type ProfileUpdateInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
}

// ChangePasswordInput carries a password rotation request. The current
// password is re-checked by the backend.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ProfileAPI is the account-profile slice of the backend boundary. Every
// operation requires an authenticated session.
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, in ProfileUpdateInput) (*domain.Profile, error)
	ChangePassword(ctx context.Context, in ChangePasswordInput) error
}

// AddressInput is the address-book creation payload.
type AddressInput struct {
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postalCode" validate:"required"`
	Country      string `json:"country" validate:"required"`
	IsDefault    bool   `json:"isDefault"`
}

// AddressAPI is the saved-address slice of the backend boundary. Every
// operation requires an authenticated session.
type AddressAPI interface {
	ListAddresses(ctx context.Context) ([]domain.Address, error)
	AddAddress(ctx context.Context, in AddressInput) error
	DeleteAddress(ctx context.Context, addressID string) error
	SetDefaultAddress(ctx context.Context, addressID string) error
}

// CatalogAPI is the read-only menu slice of the backend boundary.
type CatalogAPI interface {
	ListItems(ctx context.Context) ([]domain.CatalogItem, error)
	ListCategories(ctx context.Context) ([]domain.MenuCategory, error)
	ListItemsByCategory(ctx context.Context, categoryID string) ([]domain.CatalogItem, error)
	ListVegetarianItems(ctx context.Context) ([]domain.CatalogItem, error)
	FetchItem(ctx context.Context, itemID string) (*domain.CatalogItem, error)
}

// OrderItemInput is one cart line as submitted to the backend. Name and
// price are the add-time snapshot, not a fresh catalog read.
type OrderItemInput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderInput is the order-creation payload.
type OrderInput struct {
	Items               []OrderItemInput `json:"items"`
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	Phone               string           `json:"phone"`
	Address             string           `json:"address"`
	SpecialInstructions string           `json:"specialInstructions,omitempty"`
}

// OrderAPI is the order slice of the backend boundary.
type OrderAPI interface {
	SubmitOrder(ctx context.Context, in OrderInput) (*domain.OrderConfirmation, error)
	GetOrder(ctx context.Context, orderID string) (*domain.OrderConfirmation, error)
}

// ReservationAPI is the table-reservation slice of the backend boundary.
type ReservationAPI interface {
	SubmitReservation(ctx context.Context, in domain.Reservation) (*domain.ReservationConfirmation, error)
}
