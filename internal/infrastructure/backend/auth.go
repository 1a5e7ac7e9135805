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
	pathSignIn         = "/auth/signin"
	pathSignUp         = "/auth/signup"
	pathForgotPassword = "/auth/forgot-password"
)

// signInResponse mirrors the backend's sign-in payload. The numeric user id
// is decoded as json.Number so both string and integer encodings survive.
type signInResponse struct {
	AccessToken   string      `json:"accessToken"`
	ID            json.Number `json:"id"`
	Username      string      `json:"username"`
	Email         string      `json:"email"`
	EmailVerified bool        `json:"emailVerified"`
	Roles         []string    `json:"roles"`
}

// SignIn exchanges credentials for a bearer token and the profile snapshot
// captured into the session. The Authorizer never attaches a credential to
// this call.
func (c *Client) SignIn(ctx context.Context, in ports.SignInInput) (*domain.Session, error) {
	var resp signInResponse
	if err := c.do(ctx, "signin", http.MethodPost, pathSignIn, in, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("signin: %w: response carried no access token", domain.ErrInvalidInput)
	}

	return &domain.Session{
		UserID:        resp.ID.String(),
		Username:      resp.Username,
		Email:         resp.Email,
		EmailVerified: resp.EmailVerified,
		Roles:         resp.Roles,
		Token:         resp.AccessToken,
	}, nil
}

// SignUp registers a new account. The backend replies with a success flag
// and a human-readable message (email verification instructions).
func (c *Client) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
	var resp ports.SignUpResult
	if err := c.do(ctx, "signup", http.MethodPost, pathSignUp, in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword asks the backend to mail reset instructions. Works without
// a session; the address is checked locally before the request goes out.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := c.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("forgot password: %w: %w", domain.ErrInvalidInput, err)
	}
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.do(ctx, "forgot_password", http.MethodPost, pathForgotPassword, body, nil)
}
