package interfaces

import (
	"context"

	"github.com/secmon-lab/caseboard/pkg/domain/types"
)

// CacheStore is a key-value blob store holding the latest snapshot per key
type CacheStore interface {
	// Get returns the blob stored at key, or model.ErrCacheMiss if the key is absent
	Get(ctx context.Context, key types.CacheKey) ([]byte, error)

	// Set replaces the blob stored at key
	Set(ctx context.Context, key types.CacheKey, value []byte) error

	// Close closes the store connection
	Close() error
}
