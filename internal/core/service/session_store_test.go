package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/funnfood/storefront/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub storage
// ---------------------------------------------------------------------------

type stubStorage struct {
	values map[string]string
	getErr error // if set, Get returns this error
	setErr error // if set, Set returns this error
	delErr error // if set, Delete returns this error
}

func newStubStorage() *stubStorage {
	return &stubStorage{values: make(map[string]string)}
}

func (s *stubStorage) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (s *stubStorage) Set(_ context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *stubStorage) Delete(_ context.Context, key string) error {
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.values, key)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func validSession() *domain.Session {
	return &domain.Session{
		UserID:        "7",
		Username:      "ana",
		Email:         "ana@example.com",
		EmailVerified: true,
		Roles:         []string{"ROLE_USER"},
		Token:         "opaque-token",
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ana",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// ---------------------------------------------------------------------------
// Restore
// ---------------------------------------------------------------------------

func TestSessionStore_Restore_EmptyStorageIsAnonymous(t *testing.T) {
	store := NewSessionStore(newStubStorage(), discardLogger)

	if sess := store.Restore(context.Background()); sess != nil {
		t.Errorf("expected no session, got %+v", sess)
	}
	if store.Current() != nil {
		t.Error("Current must be nil after restoring empty storage")
	}
}

func TestSessionStore_SaveThenRestore_RoundTrips(t *testing.T) {
	storage := newStubStorage()
	store := NewSessionStore(storage, discardLogger)
	ctx := context.Background()

	if err := store.Save(ctx, validSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh store over the same storage simulates a process restart.
	restored := NewSessionStore(storage, discardLogger).Restore(ctx)
	if restored == nil {
		t.Fatal("expected a restored session")
	}
	if restored.Username != "ana" || restored.Token != "opaque-token" {
		t.Errorf("unexpected session: %+v", restored)
	}
	if !restored.EmailVerified || len(restored.Roles) != 1 {
		t.Errorf("profile snapshot lost in round trip: %+v", restored)
	}
}

func TestSessionStore_Restore_CorruptProfilePurged(t *testing.T) {
	storage := newStubStorage()
	storage.values[keyToken] = "opaque-token"
	storage.values[keyUser] = "{not json"
	store := NewSessionStore(storage, discardLogger)

	if sess := store.Restore(context.Background()); sess != nil {
		t.Fatalf("corrupt profile must restore as anonymous, got %+v", sess)
	}
	if _, ok := storage.values[keyToken]; ok {
		t.Error("corrupt entry must be purged: token still present")
	}
	if _, ok := storage.values[keyUser]; ok {
		t.Error("corrupt entry must be purged: user still present")
	}
}

func TestSessionStore_Restore_HalfPairPurged(t *testing.T) {
	storage := newStubStorage()
	storage.values[keyToken] = "opaque-token" // credential without identity
	store := NewSessionStore(storage, discardLogger)

	if sess := store.Restore(context.Background()); sess != nil {
		t.Fatalf("credential without identity must restore as anonymous, got %+v", sess)
	}
	if len(storage.values) != 0 {
		t.Errorf("half-written pair must be purged, still holding %v", storage.values)
	}
}

func TestSessionStore_Restore_ExpiredCredentialPurged(t *testing.T) {
	storage := newStubStorage()
	store := NewSessionStore(storage, discardLogger)
	ctx := context.Background()

	sess := validSession()
	sess.Token = signedToken(t, time.Now().Add(-time.Hour))
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := NewSessionStore(storage, discardLogger).Restore(ctx); got != nil {
		t.Fatalf("expired credential must restore as anonymous, got %+v", got)
	}
	if len(storage.values) != 0 {
		t.Error("expired credential must be purged from storage")
	}
}

func TestSessionStore_Restore_ValidJWTKept(t *testing.T) {
	storage := newStubStorage()
	store := NewSessionStore(storage, discardLogger)
	ctx := context.Background()

	sess := validSession()
	sess.Token = signedToken(t, time.Now().Add(time.Hour))
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := NewSessionStore(storage, discardLogger).Restore(ctx); got == nil {
		t.Fatal("unexpired credential must restore")
	}
}

func TestSessionStore_Restore_OpaqueTokenNeverExpiresLocally(t *testing.T) {
	// Tokens that are not JWTs are opaque to the client; only the backend can
	// reject them.
	storage := newStubStorage()
	store := NewSessionStore(storage, discardLogger)
	ctx := context.Background()

	if err := store.Save(ctx, validSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := NewSessionStore(storage, discardLogger).Restore(ctx); got == nil {
		t.Fatal("opaque token must restore")
	}
}

// ---------------------------------------------------------------------------
// Save / Clear
// ---------------------------------------------------------------------------

func TestSessionStore_Save_RejectsInvariantViolations(t *testing.T) {
	store := NewSessionStore(newStubStorage(), discardLogger)
	ctx := context.Background()

	cases := []*domain.Session{
		nil,
		{Token: "tok"},    // credential without identity
		{UserID: "7"},     // identity without credential
		{Username: "ana"}, // neither
	}
	for i, sess := range cases {
		if err := store.Save(ctx, sess); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if store.Current() != nil {
		t.Error("rejected save must not change the current session")
	}
}

func TestSessionStore_Save_SurfacesStorageFailure(t *testing.T) {
	storage := newStubStorage()
	storage.setErr = errors.New("quota exceeded")
	store := NewSessionStore(storage, discardLogger)

	err := store.Save(context.Background(), validSession())
	if !errors.Is(err, domain.ErrStorage) {
		t.Errorf("expected ErrStorage, got %v", err)
	}
}

func TestSessionStore_Save_OverwritesOnRelogin(t *testing.T) {
	storage := newStubStorage()
	store := NewSessionStore(storage, discardLogger)
	ctx := context.Background()

	if err := store.Save(ctx, validSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := validSession()
	second.UserID = "8"
	second.Username = "bruno"
	second.Token = "other-token"
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := NewSessionStore(storage, discardLogger).Restore(ctx)
	if restored == nil || restored.Username != "bruno" || restored.Token != "other-token" {
		t.Errorf("re-login must overwrite the prior session, got %+v", restored)
	}
}

func TestSessionStore_Clear_Idempotent(t *testing.T) {
	store := NewSessionStore(newStubStorage(), discardLogger)
	ctx := context.Background()

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear on empty storage must succeed: %v", err)
	}
	if err := store.Save(ctx, validSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear must succeed: %v", err)
	}
	if store.Current() != nil {
		t.Error("Current must be nil after clear")
	}
}

// ---------------------------------------------------------------------------
// Authorize / OnUnauthorized
// ---------------------------------------------------------------------------

func TestSessionStore_Authorize_AttachesBearer(t *testing.T) {
	store := NewSessionStore(newStubStorage(), discardLogger)
	ctx := context.Background()
	if err := store.Save(ctx, validSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, "http://localhost:8080/orders", nil)
	store.Authorize(req)

	if got := req.Header.Get("Authorization"); got != "Bearer opaque-token" {
		t.Errorf("expected bearer header, got %q", got)
	}
}

func TestSessionStore_Authorize_SkipsCredentialEndpoints(t *testing.T) {
	store := NewSessionStore(newStubStorage(), discardLogger)
	ctx := context.Background()
	if err := store.Save(ctx, validSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, path := range []string{"/auth/signin", "/auth/signup"} {
		req, _ := http.NewRequest(http.MethodPost, "http://localhost:8080"+path, nil)
		store.Authorize(req)
		if got := req.Header.Get("Authorization"); got != "" {
			t.Errorf("%s: credential must never be sent, got %q", path, got)
		}
	}
}

func TestSessionStore_Authorize_NoopWhenAnonymous(t *testing.T) {
	store := NewSessionStore(newStubStorage(), discardLogger)

	req, _ := http.NewRequest(http.MethodGet, "http://localhost:8080/menu/items", nil)
	store.Authorize(req)

	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("anonymous request must stay unmodified, got %q", got)
	}
}

func TestSessionStore_OnUnauthorized_PurgesUnconditionally(t *testing.T) {
	storage := newStubStorage()
	store := NewSessionStore(storage, discardLogger)
	ctx := context.Background()
	if err := store.Save(ctx, validSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.OnUnauthorized(ctx)

	if store.Current() != nil {
		t.Error("session must be purged after an authorization rejection")
	}
	if len(storage.values) != 0 {
		t.Errorf("storage must be purged, still holding %v", storage.values)
	}
}
