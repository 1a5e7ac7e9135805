// Package storage provides the interchangeable persistence backends behind
// the ports.Storage capability: an in-memory map, a durable JSON file, an
// expiring Redis keyspace, and a durable Mongo collection. The stores never
// see which one is wired in.
package storage

import (
	"context"

	"github.com/funnfood/storefront/internal/core/domain"
)

// Memory is a map-backed Storage for tests and throwaway sessions. Nothing
// survives the process.
type Memory struct {
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}
