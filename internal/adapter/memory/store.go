// Package memory provides a process-local blob store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/salita/internal/domain"
)

// Store is a map-backed blob store. Values are copied on the way in and out.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("kv %s: %w", key, domain.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return domain.NewValidationError("key", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte{}, value...)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
