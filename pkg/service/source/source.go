package source

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
	"github.com/secmon-lab/caseboard/pkg/service/cache"
)

// maxSnapshotSize bounds a single upstream export
const maxSnapshotSize = 64 << 20

type leveledSlog struct {
	inner *slog.Logger
}

// retries are expected, so client errors are reported as warnings
func (l leveledSlog) Error(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l leveledSlog) Warn(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l leveledSlog) Info(msg string, keysAndValues ...any) {
	l.inner.Info(msg, keysAndValues...)
}

func (l leveledSlog) Debug(msg string, keysAndValues ...any) {
	l.inner.Debug(msg, keysAndValues...)
}

// Option configures a Client
type Option func(*Client)

// WithMaxRetries sets the maximum number of retries per snapshot
func WithMaxRetries(maxRetries int) Option {
	return func(c *Client) {
		c.http.RetryMax = maxRetries
	}
}

// WithRetryWait sets the bounds of the wait between retries
func WithRetryWait(waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = waitMin
		c.http.RetryWaitMax = waitMax
	}
}

// WithLogger sets the logger of the underlying HTTP client
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.http.Logger = retryablehttp.LeveledLogger(leveledSlog{inner: logger})
	}
}

// Client fetches cache snapshots exported by the upstream aggregation
// service as <base-url>/<key>.json and stores them unchanged
type Client struct {
	baseURL *url.URL
	http    *retryablehttp.Client
	cache   *cache.Accessor
}

var _ interfaces.Populator = (*Client)(nil)

// New creates a new Client writing fetched snapshots to store
func New(baseURL string, store interfaces.CacheStore, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid source URL", goerr.V("url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("source URL must be http or https", goerr.V("url", baseURL))
	}

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.RetryWaitMin = 1 * time.Second
	httpClient.RetryWaitMax = 10 * time.Second
	httpClient.HTTPClient.Timeout = 30 * time.Second
	httpClient.Logger = retryablehttp.LeveledLogger(leveledSlog{inner: slog.Default().With("subsystem", "source")})
	httpClient.CheckRetry = retryPolicy

	c := &Client{
		baseURL: u,
		http:    httpClient,
		cache:   cache.New(store),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// retryPolicy does not retry rate limiting so the run fails fast
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Populators returns the client registered for every cache key
func (c *Client) Populators() map[types.CacheKey]interfaces.Populator {
	populators := make(map[types.CacheKey]interfaces.Populator)
	for _, key := range types.CacheKeys() {
		populators[key] = c
	}
	return populators
}

func (c *Client) snapshotURL(key types.CacheKey) string {
	return c.baseURL.JoinPath(key.String() + ".json").String()
}

// Fetch downloads the snapshot of key
func (c *Client) Fetch(ctx context.Context, key types.CacheKey) ([]byte, error) {
	if !key.IsValid() {
		return nil, goerr.New("unknown cache key", goerr.V("key", key))
	}

	target := c.snapshotURL(key)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", target))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch snapshot", goerr.V("url", target))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, goerr.New("unexpected status from source",
			goerr.V("url", target),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", strings.TrimSpace(string(body))))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotSize+1))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read snapshot", goerr.V("url", target))
	}
	if len(data) > maxSnapshotSize {
		return nil, goerr.New("snapshot too large", goerr.V("url", target), goerr.V("limit", maxSnapshotSize))
	}
	return data, nil
}

// Populate fetches the snapshot of key and writes it to the cache
func (c *Client) Populate(ctx context.Context, key types.CacheKey) error {
	data, err := c.Fetch(ctx, key)
	if err != nil {
		return err
	}
	if err := c.cache.PutRaw(ctx, key, data); err != nil {
		return goerr.Wrap(err, "failed to store snapshot", goerr.V("key", key))
	}

	ctxlog.From(ctx).Info("snapshot stored", "key", key, "size", len(data))
	return nil
}
