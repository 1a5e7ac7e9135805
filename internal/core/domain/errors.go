package domain

import "errors"

// Sentinel errors for the four failure kinds the client distinguishes, plus
// the precise conditions checkout gating depends on. Callers inspect them
// with errors.Is; no kind is ever collapsed into a generic failure.
var (
	// ErrNetwork marks a request that never completed (DNS, dial, timeout).
	ErrNetwork = errors.New("network failure")
	// ErrUnauthorized marks a backend authorization rejection. The session
	// has already been purged by the time a caller sees this.
	ErrUnauthorized = errors.New("authorization rejected")
	// ErrStorage marks a persistence read or write failure.
	ErrStorage = errors.New("storage failure")
	// ErrInvalidInput marks malformed input caught before any request is sent.
	ErrInvalidInput = errors.New("invalid input")

	ErrNoSession = errors.New("no active session")
	ErrEmptyCart = errors.New("cart is empty")
	ErrNotFound  = errors.New("not found")
)
