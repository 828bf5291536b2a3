// Package store adapts a byte-level slots.Repository to JSON-encoded named
// slots. It performs no schema validation: callers own the shape of what they
// store, and a malformed stored document surfaces as a decode error.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/client/repositories/slots"
)

// Store reads and writes JSON values under slot keys.
type Store struct {
	repo slots.Repository
}

// New wraps repo.
func New(repo slots.Repository) *Store {
	return &Store{repo: repo}
}

// Get decodes the slot key into v. It reports false, leaving v untouched,
// when the slot is absent.
func (s *Store) Get(ctx context.Context, key string, v any) (bool, error) {
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode slot[%s]: %w", key, err)
	}
	return true, nil
}

// Set encodes v and stores it under key.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot[%s]: %w", key, err)
	}
	return s.repo.Set(ctx, key, b)
}

// Remove deletes key. Removing an absent slot is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// GetString returns the raw, non-JSON contents of key.
func (s *Store) GetString(ctx context.Context, key string) (string, bool, error) {
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if b == nil {
		return "", false, nil
	}
	return string(b), true, nil
}

// SetString stores value verbatim.
func (s *Store) SetString(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, []byte(value))
}

// Batch collects writes to be applied together by Commit.
type Batch struct {
	sets    map[string][]byte
	deletes []string
	err     error
}

// Set queues v, JSON encoded, under key.
func (b *Batch) Set(key string, v any) {
	if b.err != nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		b.err = fmt.Errorf("encode slot[%s]: %w", key, err)
		return
	}
	b.sets[key] = raw
}

// SetString queues a raw value under key.
func (b *Batch) SetString(key, value string) {
	b.sets[key] = []byte(value)
}

// Remove queues the deletion of key.
func (b *Batch) Remove(key string) {
	delete(b.sets, key)
	b.deletes = append(b.deletes, key)
}

// NewBatch starts an empty batch.
func (s *Store) NewBatch() *Batch {
	return &Batch{sets: map[string][]byte{}}
}

// Commit applies b atomically when the backend supports it and key by key
// otherwise.
func (s *Store) Commit(ctx context.Context, b *Batch) error {
	if b.err != nil {
		return b.err
	}
	if batcher, ok := s.repo.(slots.Batcher); ok {
		return batcher.Apply(ctx, b.sets, b.deletes)
	}
	for k, v := range b.sets {
		if err := s.repo.Set(ctx, k, v); err != nil {
			return err
		}
	}
	for _, k := range b.deletes {
		if err := s.repo.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying repository.
func (s *Store) Close() error {
	return s.repo.Close()
}
