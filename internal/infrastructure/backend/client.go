// Package backend implements the REST client for the storefront's remote
// boundary: authentication, menu catalog, orders, reservations, and the
// account profile with its address book. All
// calls honour the configured timeout, attach the bearer credential through
// the session Authorizer, and map backend failures onto the domain's
// sentinel error kinds.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/funnfood/storefront/internal/core/domain"
	"github.com/funnfood/storefront/internal/core/ports"
	"github.com/funnfood/storefront/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the concrete implementation of the AuthAPI, CatalogAPI,
// OrderAPI, ReservationAPI, ProfileAPI, and AddressAPI ports.
type Client struct {
	base     string
	http     *http.Client
	auth     ports.Authorizer
	validate *validator.Validate
	log      zerolog.Logger
}

// NewClient builds a Client. The timeout bounds every call end-to-end; a
// default is applied when none is provided.
func NewClient(cfg Config, auth ports.Authorizer, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:     strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		auth:     auth,
		validate: validator.New(),
		log:      log,
	}
}

// apiError is the backend's error envelope.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one JSON round trip. A request that never completes wraps
// domain.ErrNetwork; a 401 purges the session via the Authorizer and returns
// domain.ErrUnauthorized; a 404 returns domain.ErrNotFound. Other non-2xx
// statuses surface the backend's message.
func (c *Client) do(ctx context.Context, endpoint, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.auth.Authorize(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.BackendRequestsTotal.WithLabelValues(endpoint, statusClass(resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.auth.OnUnauthorized(ctx)
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	case resp.StatusCode >= 400:
		msg := backendMessage(resp.Body)
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Str("message", msg).Msg("backend rejected request")
		return fmt.Errorf("%s %s: backend returned %d: %s", method, path, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func backendMessage(body io.Reader) string {
	var e apiError
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		return "unreadable error body"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return "no message"
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
