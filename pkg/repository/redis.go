package repository

import (
	"context"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
)

const (
	redisKeyPrefix = "caseboard/"

	// local cache capacity in entries; there are only a handful of snapshot keys
	localCacheSize = 64
)

// Redis implements CacheStore interface with Redis, optionally fronted by an
// in-process TinyLFU cache
type Redis struct {
	client *redis.Client
	data   *cache.Cache
}

// NewRedis creates a new Redis cache store. localTTL > 0 enables the
// in-process cache; reads may then lag writes from other processes by up to localTTL.
func NewRedis(ctx context.Context, redisURL string, localTTL time.Duration) (interfaces.CacheStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse redis url")
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis",
			goerr.V("addr", opts.Addr))
	}

	return NewRedisWithClient(ctx, client, localTTL), nil
}

// NewRedisWithClient creates a cache store from an existing Redis client
func NewRedisWithClient(ctx context.Context, client *redis.Client, localTTL time.Duration) interfaces.CacheStore {
	cacheOpts := &cache.Options{
		Redis: client,
	}
	if localTTL > 0 {
		cacheOpts.LocalCache = cache.NewTinyLFU(localCacheSize, localTTL)
	}

	ctxlog.From(ctx).Info("Redis cache store initialized",
		"addr", client.Options().Addr,
		"localTTL", localTTL,
	)

	return &Redis{
		client: client,
		data:   cache.New(cacheOpts),
	}
}

func redisKey(key types.CacheKey) string {
	return redisKeyPrefix + key.String()
}

// Get retrieves the blob stored at key
func (r *Redis) Get(ctx context.Context, key types.CacheKey) ([]byte, error) {
	if key == "" {
		return nil, goerr.New("cache key is empty")
	}

	var value []byte
	if err := r.data.Get(ctx, redisKey(key), &value); err != nil {
		if err == cache.ErrCacheMiss {
			return nil, goerr.Wrap(model.ErrCacheMiss, "failed to get cache value",
				goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to get cache value from redis",
			goerr.V("key", key))
	}

	return value, nil
}

// Set replaces the blob stored at key. Snapshots never expire; each refresh
// overwrites the previous value.
func (r *Redis) Set(ctx context.Context, key types.CacheKey, value []byte) error {
	if key == "" {
		return goerr.New("cache key is empty")
	}

	// go-redis/cache skips the Redis write when the TTL is negative
	if err := r.client.Set(ctx, redisKey(key), value, 0).Err(); err != nil {
		return goerr.Wrap(err, "failed to set cache value to redis",
			goerr.V("key", key))
	}
	r.data.DeleteFromLocalCache(redisKey(key))

	return nil
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}
