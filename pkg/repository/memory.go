package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
)

// Memory implements CacheStore interface with in-memory storage
type Memory struct {
	mu   sync.RWMutex
	data map[types.CacheKey][]byte
}

// NewMemory creates a new memory cache store
func NewMemory() interfaces.CacheStore {
	return &Memory{
		data: make(map[types.CacheKey][]byte),
	}
}

// Get retrieves the blob stored at key
func (m *Memory) Get(ctx context.Context, key types.CacheKey) ([]byte, error) {
	if key == "" {
		return nil, goerr.New("cache key is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.data[key]
	if !exists {
		return nil, goerr.Wrap(model.ErrCacheMiss, "failed to get cache value",
			goerr.V("key", key))
	}

	// Return a copy to prevent external modification
	return append([]byte(nil), value...), nil
}

// Set replaces the blob stored at key
func (m *Memory) Set(ctx context.Context, key types.CacheKey, value []byte) error {
	if key == "" {
		return goerr.New("cache key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Close does nothing for memory store
func (m *Memory) Close() error {
	return nil
}
