package ports

import (
	"context"
	"net/http"

	"github.com/funnfood/storefront/internal/core/domain"
)

// SessionStore is the single source of truth for "is a user authenticated,
// and with what credential", survivable across process restarts on one
// device.
type SessionStore interface {
	// Restore reads identity + credential from persistence. It never fails:
	// malformed or expired stored data is purged and treated as absence.
	Restore(ctx context.Context) *domain.Session
	// Save persists identity + credential, replacing any prior value.
	Save(ctx context.Context, session *domain.Session) error
	// Clear removes the persisted identity + credential. Idempotent.
	Clear(ctx context.Context) error
	// Current returns the in-memory session, nil when anonymous.
	Current() *domain.Session

	Authorizer
}

// Authorizer is the slice of SessionStore the request layer depends on.
type Authorizer interface {
	// Authorize attaches the bearer credential header to req if a session
	// exists and the target is not itself a sign-in/sign-up endpoint. The
	// request is left unmodified when anonymous.
	Authorize(req *http.Request)
	// OnUnauthorized is invoked by the request layer whenever a backend call
	// reports an authorization failure. The credential is treated as invalid
	// and purged unconditionally; there is no silent refresh.
	OnUnauthorized(ctx context.Context)
}
