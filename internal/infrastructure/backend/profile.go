package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/funnfood/storefront/internal/core/domain"
	"github.com/funnfood/storefront/internal/core/ports"
)

const (
	pathProfile        = "/user/profile"
	pathChangePassword = "/user/change-password"
	pathAddresses      = "/user/addresses"
)

type profileResponse struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

func (r profileResponse) toDomain() domain.Profile {
	return domain.Profile{
		Username:      r.Username,
		Email:         r.Email,
		EmailVerified: r.EmailVerified,
	}
}

type addressResponse struct {
	ID           json.Number `json:"id"`
	AddressLine1 string      `json:"addressLine1"`
	AddressLine2 string      `json:"addressLine2"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	PostalCode   string      `json:"postalCode"`
	Country      string      `json:"country"`
	IsDefault    bool        `json:"isDefault"`
}

func (r addressResponse) toDomain() domain.Address {
	return domain.Address{
		ID:           r.ID.String(),
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		PostalCode:   r.PostalCode,
		Country:      r.Country,
		IsDefault:    r.IsDefault,
	}
}

// GetProfile fetches the account record behind the active session.
func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var resp profileResponse
	if err := c.do(ctx, "get_profile", http.MethodGet, pathProfile, nil, &resp); err != nil {
		return nil, err
	}
	profile := resp.toDomain()
	return &profile, nil
}

// UpdateProfile changes the editable profile fields and returns the updated
// record. The input is validated locally before anything is sent.
func (c *Client) UpdateProfile(ctx context.Context, in ports.ProfileUpdateInput) (*domain.Profile, error) {
	if err := c.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("update profile: %w: %w", domain.ErrInvalidInput, err)
	}
	var resp profileResponse
	if err := c.do(ctx, "update_profile", http.MethodPut, pathProfile, in, &resp); err != nil {
		return nil, err
	}
	profile := resp.toDomain()
	return &profile, nil
}

// ChangePassword rotates the account password. The new password is checked
// locally; the current one only by the backend.
func (c *Client) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	if err := c.validate.Struct(in); err != nil {
		return fmt.Errorf("change password: %w: %w", domain.ErrInvalidInput, err)
	}
	return c.do(ctx, "change_password", http.MethodPost, pathChangePassword, in, nil)
}

// ListAddresses returns the account's saved addresses.
func (c *Client) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	var resp []addressResponse
	if err := c.do(ctx, "list_addresses", http.MethodGet, pathAddresses, nil, &resp); err != nil {
		return nil, err
	}
	addresses := make([]domain.Address, 0, len(resp))
	for _, r := range resp {
		addresses = append(addresses, r.toDomain())
	}
	return addresses, nil
}

// AddAddress saves a new address to the account's address book.
func (c *Client) AddAddress(ctx context.Context, in ports.AddressInput) error {
	if err := c.validate.Struct(in); err != nil {
		return fmt.Errorf("add address: %w: %w", domain.ErrInvalidInput, err)
	}
	return c.do(ctx, "add_address", http.MethodPost, pathAddresses, in, nil)
}

// DeleteAddress removes a saved address. Unknown ids map to
// domain.ErrNotFound.
func (c *Client) DeleteAddress(ctx context.Context, addressID string) error {
	return c.do(ctx, "delete_address", http.MethodDelete, pathAddresses+"/"+addressID, nil, nil)
}

// SetDefaultAddress marks one saved address as the delivery default.
func (c *Client) SetDefaultAddress(ctx context.Context, addressID string) error {
	return c.do(ctx, "set_default_address", http.MethodPut, pathAddresses+"/"+addressID+"/default", nil, nil)
}
