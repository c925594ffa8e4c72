package interfaces

//go:generate moq -out mocks/populator_mock.go -pkg mocks . Populator Generator

import (
	"context"

	"github.com/secmon-lab/caseboard/pkg/domain/types"
)

// Populator fetches a snapshot from an upstream service and writes it to the cache
type Populator interface {
	Populate(ctx context.Context, key types.CacheKey) error
}

// PopulatorFunc adapts a function to Populator
type PopulatorFunc func(ctx context.Context, key types.CacheKey) error

// Populate calls f(ctx, key)
func (f PopulatorFunc) Populate(ctx context.Context, key types.CacheKey) error {
	return f(ctx, key)
}

// Generator produces synthetic snapshots for local development
type Generator interface {
	// Generate returns a JSON-serializable value for every cache key
	Generate(count int) (map[types.CacheKey]any, error)
}
