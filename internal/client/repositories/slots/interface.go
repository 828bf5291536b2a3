package slots

import (
	"context"
)

// Repository is the byte-level persistence port: named slots holding opaque
// values. Get returns (nil, nil) for an absent key. Delete of an absent key
// is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}

// Batcher is implemented by backends that can apply several writes
// atomically. Callers fall back to one call per key otherwise.
type Batcher interface {
	Apply(ctx context.Context, sets map[string][]byte, deletes []string) error
}
