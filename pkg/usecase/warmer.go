package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
	"github.com/secmon-lab/caseboard/pkg/service/cache"
)

var _ Warmer = (*WarmerUseCase)(nil)

// WarmerUseCase bootstraps the cache. It runs once per call and never retries.
type WarmerUseCase struct {
	cache      *cache.Accessor
	populators map[types.CacheKey]interfaces.Populator
	generator  interfaces.Generator
}

// NewWarmer creates a new WarmerUseCase instance. populators or generator may
// be nil when the corresponding mode is not used.
func NewWarmer(store interfaces.CacheStore, populators map[types.CacheKey]interfaces.Populator, generator interfaces.Generator) *WarmerUseCase {
	return &WarmerUseCase{
		cache:      cache.New(store),
		populators: populators,
		generator:  generator,
	}
}

// Warm populates every cache key that holds no value yet. The first
// populator failure stops the run; keys populated before it are kept.
// Returns the keys that were populated.
func (uc *WarmerUseCase) Warm(ctx context.Context) ([]types.CacheKey, error) {
	logger := ctxlog.From(ctx)
	logger.Info("checking caches")

	var populated []types.CacheKey
	for _, key := range types.CacheKeys() {
		found, err := uc.cache.Has(ctx, key)
		if err != nil {
			return populated, goerr.Wrap(err, "failed to check cache", goerr.V("key", key))
		}
		if found {
			continue
		}

		populator, ok := uc.populators[key]
		if !ok || populator == nil {
			return populated, goerr.New("no populator registered", goerr.V("key", key))
		}

		logger.Warn("no data found in cache. refreshing...", "key", key)
		if err := populator.Populate(ctx, key); err != nil {
			return populated, goerr.Wrap(err, "failed to populate cache", goerr.V("key", key))
		}
		populated = append(populated, key)
	}

	logger.Info("cache check completed", "populated", populated)
	return populated, nil
}

// Seed writes synthetic snapshots produced for count cases. Keys that
// already hold a value are kept unless overwrite is set. Returns the keys written.
func (uc *WarmerUseCase) Seed(ctx context.Context, count int, overwrite bool) ([]types.CacheKey, error) {
	if uc.generator == nil {
		return nil, goerr.New("synthetic data generator is not configured")
	}
	if count < 0 {
		return nil, goerr.New("number of cases must not be negative", goerr.V("count", count))
	}

	data, err := uc.generator.Generate(count)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate synthetic data")
	}

	logger := ctxlog.From(ctx)
	var written []types.CacheKey
	for _, key := range types.CacheKeys() {
		value, ok := data[key]
		if !ok {
			continue
		}

		if !overwrite {
			found, err := uc.cache.Has(ctx, key)
			if err != nil {
				return written, goerr.Wrap(err, "failed to check cache", goerr.V("key", key))
			}
			if found {
				logger.Debug("keeping existing cache value", "key", key)
				continue
			}
		}

		if err := uc.cache.Put(ctx, key, value); err != nil {
			return written, goerr.Wrap(err, "failed to write synthetic data", goerr.V("key", key))
		}
		written = append(written, key)
	}

	logger.Info("synthetic data written", "keys", written, "cases", count)
	return written, nil
}
