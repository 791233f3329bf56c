package domain

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound = errors.New("storage key not found")
)

// KVStorage is the durable key-value store the goal list is persisted to.
type KVStorage interface {
	// Get returns the raw value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Pinger is implemented by backends that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
