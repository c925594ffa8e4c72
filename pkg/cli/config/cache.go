package config

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Cache selects the cache store backend. Redis wins over Firestore; with
// neither configured the cache lives in memory.
type Cache struct {
	RedisURL      string
	LocalCacheTTL time.Duration
	Firestore     Firestore
}

// Flags returns CLI flags for Cache configuration
func (c *Cache) Flags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:        "redis-url",
			Usage:       "Redis URL of the cache store (redis://[:password@]host:port/db)",
			Category:    "Cache",
			Sources:     cli.EnvVars("CASEBOARD_REDIS_URL"),
			Destination: &c.RedisURL,
		},
		&cli.DurationFlag{
			Name:        "local-cache-ttl",
			Usage:       "TTL of the in-process layer in front of Redis (0 disables it)",
			Category:    "Cache",
			Sources:     cli.EnvVars("CASEBOARD_LOCAL_CACHE_TTL"),
			Destination: &c.LocalCacheTTL,
		},
	}, c.Firestore.Flags()...)
}

// Configure creates the selected cache store
func (c *Cache) Configure(ctx context.Context) (interfaces.CacheStore, error) {
	logger := ctxlog.From(ctx)

	switch {
	case c.RedisURL != "":
		if c.LocalCacheTTL < 0 {
			return nil, goerr.New("local cache TTL must not be negative", goerr.V("ttl", c.LocalCacheTTL))
		}
		store, err := repository.NewRedis(ctx, c.RedisURL, c.LocalCacheTTL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init redis", goerr.V("url", redactURL(c.RedisURL)))
		}
		return store, nil

	case c.Firestore.IsConfigured():
		return c.Firestore.Configure(ctx)

	default:
		logger.Warn("Using memory cache instead of redis or firestore. The data will be removed when shutting down")
		return repository.NewMemory(), nil
	}
}

// Backend returns the name of the selected backend
func (c *Cache) Backend() string {
	switch {
	case c.RedisURL != "":
		return "redis"
	case c.Firestore.IsConfigured():
		return "firestore"
	default:
		return "memory"
	}
}

// LogValue returns structured log value
func (c Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", c.Backend()),
		slog.String("redis_url", redactURL(c.RedisURL)),
		slog.Duration("local_cache_ttl", c.LocalCacheTTL),
		slog.Any("firestore", c.Firestore),
	)
}

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "(invalid)"
	}
	return u.Redacted()
}
