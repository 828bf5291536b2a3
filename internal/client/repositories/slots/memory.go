package slots

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepository keeps slots in process memory. Values are copied on the
// way in and out.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (r *MemoryRepository) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = append([]byte{}, value...)
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		out[k] = slices.Clone(v)
	}
	return out, nil
}

func (r *MemoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.data)
	return nil
}

// Apply applies sets then deletes under one lock.
func (r *MemoryRepository) Apply(ctx context.Context, sets map[string][]byte, deletes []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range sets {
		r.data[k] = append([]byte{}, v...)
	}
	for _, k := range deletes {
		delete(r.data, k)
	}
	return nil
}

func (r *MemoryRepository) Close() error { return nil }
