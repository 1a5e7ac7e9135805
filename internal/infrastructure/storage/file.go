package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/funnfood/storefront/internal/core/domain"
)

// File is a durable Storage backed by a single JSON document on disk. Values
// survive indefinitely until explicitly cleared. Writes go through a temp
// file and rename so a crash never leaves a half-written document.
type File struct {
	path string
}

// NewFile creates a File storage at path, creating parent directories as
// needed.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("file storage: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("file storage: %w", err)
	}
	return &File{path: path}, nil
}

func (f *File) Get(_ context.Context, key string) (string, error) {
	values, err := f.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.store(values)
}

func (f *File) Delete(_ context.Context, key string) error {
	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.store(values)
}

func (f *File) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("file storage: read: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("file storage: decode %s: %w", f.path, err)
	}
	return values, nil
}

func (f *File) store(values map[string]string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("file storage: encode: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("file storage: write: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("file storage: rename: %w", err)
	}
	return nil
}
