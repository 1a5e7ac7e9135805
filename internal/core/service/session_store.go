package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/funnfood/storefront/internal/core/domain"
	"github.com/funnfood/storefront/internal/core/ports"
	"github.com/funnfood/storefront/internal/metrics"
)

// Persisted key names. The profile is stored as JSON, the credential as an
// opaque string; both live and die together.
const (
	keyToken = "token"
	keyUser  = "user"
)

// SessionStore owns the authenticated-user identity and bearer credential,
// persisted across restarts via the configured storage backend. Not safe for
// concurrent use: the client runs a single interaction loop.
type SessionStore struct {
	storage ports.Storage
	log     zerolog.Logger
	current *domain.Session
}

func NewSessionStore(storage ports.Storage, log zerolog.Logger) *SessionStore {
	return &SessionStore{storage: storage, log: log}
}

// Restore reads identity + credential from storage. It never fails: a
// storage read error, a half-written pair, a corrupt profile, or an expired
// credential all count as "no session", and anything corrupt is purged so
// the next restore starts clean.
func (s *SessionStore) Restore(ctx context.Context) *domain.Session {
	token, tokenErr := s.storage.Get(ctx, keyToken)
	rawUser, userErr := s.storage.Get(ctx, keyUser)

	if errors.Is(tokenErr, domain.ErrNotFound) && errors.Is(userErr, domain.ErrNotFound) {
		s.current = nil
		return nil
	}
	if tokenErr != nil || userErr != nil {
		if (tokenErr != nil && !errors.Is(tokenErr, domain.ErrNotFound)) ||
			(userErr != nil && !errors.Is(userErr, domain.ErrNotFound)) {
			s.log.Warn().AnErr("token_err", tokenErr).AnErr("user_err", userErr).Msg("session restore: storage read failed")
		}
		// One half of the pair is missing or unreadable; the invariant says
		// the pair is all-or-nothing.
		s.purge(ctx, "incomplete")
		return nil
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(rawUser), &sess); err != nil {
		s.log.Warn().Err(err).Msg("session restore: corrupt profile purged")
		s.purge(ctx, "corrupt")
		return nil
	}
	sess.Token = token

	if err := sess.Validate(); err != nil {
		s.purge(ctx, "invalid")
		return nil
	}
	if credentialExpired(token) {
		s.log.Info().Str("user", sess.Username).Msg("session restore: credential expired")
		s.purge(ctx, "expired")
		return nil
	}

	s.current = &sess
	return s.current
}

// Save persists identity + credential, replacing any prior value. Idempotent.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	profile, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("save session: encode profile: %w", err)
	}
	if err := s.storage.Set(ctx, keyUser, string(profile)); err != nil {
		return fmt.Errorf("save session: %w: %w", domain.ErrStorage, err)
	}
	if err := s.storage.Set(ctx, keyToken, session.Token); err != nil {
		return fmt.Errorf("save session: %w: %w", domain.ErrStorage, err)
	}

	prev := s.current.State()
	s.current = session
	if prev.CanTransitionTo(domain.StateAuthenticated) {
		s.log.Info().Str("user", session.Username).Msg("session established")
	}
	return nil
}

// Clear removes the persisted identity + credential. Idempotent even when no
// session exists.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.current = nil
	var errs []error
	if err := s.storage.Delete(ctx, keyToken); err != nil {
		errs = append(errs, err)
	}
	if err := s.storage.Delete(ctx, keyUser); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("clear session: %w: %w", domain.ErrStorage, errors.Join(errs...))
	}
	return nil
}

// Current returns the in-memory session, nil when anonymous. Call Restore
// once at startup before relying on it.
func (s *SessionStore) Current() *domain.Session {
	return s.current
}

// Authorize attaches the bearer credential if a session exists and the
// target is not one of the endpoints that establish the credential.
func (s *SessionStore) Authorize(req *http.Request) {
	if s.current == nil {
		return
	}
	if isCredentialEndpoint(req.URL.Path) {
		return
	}
	req.Header.Set("Authorization", "Bearer "+s.current.Token)
}

// OnUnauthorized purges the session unconditionally. The client never
// attempts a silent credential refresh.
func (s *SessionStore) OnUnauthorized(ctx context.Context) {
	s.log.Warn().Msg("backend rejected credential, session purged")
	s.purge(ctx, "unauthorized")
}

func (s *SessionStore) purge(ctx context.Context, reason string) {
	metrics.SessionPurgesTotal.WithLabelValues(reason).Inc()
	if err := s.Clear(ctx); err != nil {
		s.log.Error().Err(err).Str("reason", reason).Msg("session purge: storage delete failed")
	}
}

// isCredentialEndpoint reports whether the path is a call that establishes
// the credential; the bearer header must never be sent on those.
func isCredentialEndpoint(path string) bool {
	return strings.Contains(path, "/signin") || strings.Contains(path, "/signup")
}

// credentialExpired decodes the token without verifying its signature (the
// client holds no key material) and checks the exp claim. Tokens that are
// not JWTs are opaque to the client and never considered expired locally.
func credentialExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
