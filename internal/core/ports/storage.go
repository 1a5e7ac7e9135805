package ports

import "context"

// Storage is the persistence capability the stores write through. Backends
// are interchangeable at construction time (memory, file, redis, mongo);
// call sites never see a concrete storage API.
//
// Get returns domain.ErrNotFound when the key is absent. Set replaces any
// prior value. Delete is idempotent.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
