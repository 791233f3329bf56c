package storage

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
)

var _ domain.KVStorage = (*InMemoryStorage)(nil)

type InMemoryStorage struct {
	store map[string][]byte

	mu sync.RWMutex
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		store: make(map[string][]byte),
	}
}

func (s *InMemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.store[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *InMemoryStorage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[key] = append([]byte(nil), value...)
	return nil
}

func (s *InMemoryStorage) Ping(ctx context.Context) error {
	return nil
}
