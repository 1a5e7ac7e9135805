package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/funnfood/storefront/internal/core/domain"
)

func newTestFile(t *testing.T) *File {
	t.Helper()
	f, err := NewFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f
}

func TestFile_RoundTrip(t *testing.T) {
	f := newTestFile(t)
	ctx := context.Background()

	if err := f.Set(ctx, "token", "jwt-value"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Set(ctx, "cart", `[{"id":"1"}]`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.Get(ctx, "token")
	if err != nil || got != "jwt-value" {
		t.Errorf("expected jwt-value, got %q (%v)", got, err)
	}
}

func TestFile_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	ctx := context.Background()

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Set(ctx, "user", `{"id":"7"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened, err := NewFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := reopened.Get(ctx, "user")
	if err != nil || got != `{"id":"7"}` {
		t.Errorf("value must survive reopen, got %q (%v)", got, err)
	}
}

func TestFile_MissingKeyIsNotFound(t *testing.T) {
	f := newTestFile(t)

	_, err := f.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFile_DeleteIdempotent(t *testing.T) {
	f := newTestFile(t)
	ctx := context.Background()

	if err := f.Set(ctx, "token", "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Delete(ctx, "token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Delete(ctx, "token"); err != nil {
		t.Fatalf("second delete must succeed: %v", err)
	}
	if _, err := f.Get(ctx, "token"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFile_CorruptDocumentSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.Get(context.Background(), "token"); err == nil {
		t.Error("corrupt document must surface an error, not silence")
	}
}

func TestMemory_Basics(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := m.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := m.Get(ctx, "k"); got != "v" {
		t.Errorf("expected v, got %q", got)
	}
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete must be idempotent: %v", err)
	}
}
