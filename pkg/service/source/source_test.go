package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
	"github.com/secmon-lab/caseboard/pkg/repository"
	"github.com/secmon-lab/caseboard/pkg/service/cache"
	"github.com/secmon-lab/caseboard/pkg/service/source"
	"github.com/secmon-lab/caseboard/pkg/usecase"
)

func fastRetry() []source.Option {
	return []source.Option{
		source.WithMaxRetries(2),
		source.WithRetryWait(time.Millisecond, 2*time.Millisecond),
	}
}

func TestClientPopulate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the snapshot unchanged", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"C1":{"account":"Acme"}}`))
		}))
		defer srv.Close()

		store := repository.NewMemory()
		client, err := source.New(srv.URL+"/export", store)
		gt.NoError(t, err)

		gt.NoError(t, client.Populate(ctx, types.CacheKeyCases))
		gt.Equal(t, gotPath, "/export/cases.json")

		raw, found, err := cache.New(store).Raw(ctx, types.CacheKeyCases)
		gt.NoError(t, err)
		gt.True(t, found)
		gt.Equal(t, string(raw), `{"C1":{"account":"Acme"}}`)
	})

	t.Run("not found is an error and nothing is stored", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		store := repository.NewMemory()
		client, err := source.New(srv.URL, store, fastRetry()...)
		gt.NoError(t, err)

		gt.Error(t, client.Populate(ctx, types.CacheKeyBugs))
		found, err := cache.New(store).Has(ctx, types.CacheKeyBugs)
		gt.NoError(t, err)
		gt.False(t, found)
	})

	t.Run("server errors are retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		client, err := source.New(srv.URL, repository.NewMemory(), fastRetry()...)
		gt.NoError(t, err)

		gt.NoError(t, client.Populate(ctx, types.CacheKeyWatchlist))
		gt.Equal(t, calls.Load(), int32(2))
	})

	t.Run("retries give up", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client, err := source.New(srv.URL, repository.NewMemory(), fastRetry()...)
		gt.NoError(t, err)

		gt.Error(t, client.Populate(ctx, types.CacheKeyStats))
		gt.Equal(t, calls.Load(), int32(3))
	})

	t.Run("rate limiting is not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client, err := source.New(srv.URL, repository.NewMemory(), fastRetry()...)
		gt.NoError(t, err)

		gt.Error(t, client.Populate(ctx, types.CacheKeyCards))
		gt.Equal(t, calls.Load(), int32(1))
	})

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>maintenance</html>`))
		}))
		defer srv.Close()

		store := repository.NewMemory()
		client, err := source.New(srv.URL, store, fastRetry()...)
		gt.NoError(t, err)

		gt.Error(t, client.Populate(ctx, types.CacheKeyIssues))
		found, err := cache.New(store).Has(ctx, types.CacheKeyIssues)
		gt.NoError(t, err)
		gt.False(t, found)
	})

	t.Run("unknown key", func(t *testing.T) {
		client, err := source.New("http://localhost", repository.NewMemory())
		gt.NoError(t, err)

		_, err = client.Fetch(ctx, types.CacheKey("unknown"))
		gt.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	t.Run("rejects non-http schemes", func(t *testing.T) {
		_, err := source.New("ftp://example.com/export", repository.NewMemory())
		gt.Error(t, err)
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		_, err := source.New("http://[::1", repository.NewMemory())
		gt.Error(t, err)
	})
}

func TestClientWarmsCache(t *testing.T) {
	ctx := context.Background()

	var (
		mu        sync.Mutex
		requested []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		requested = append(requested, strings.TrimPrefix(r.URL.Path, "/"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := repository.NewMemory()
	gt.NoError(t, cache.New(store).PutRaw(ctx, types.CacheKeyCases, []byte(`{"C1":{}}`)))

	client, err := source.New(srv.URL, store, fastRetry()...)
	gt.NoError(t, err)

	populated, err := usecase.NewWarmer(store, client.Populators(), nil).Warm(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(populated), 7)

	mu.Lock()
	defer mu.Unlock()
	gt.Equal(t, len(requested), 7)
	gt.Equal(t, requested[0], "details.json")
	gt.Equal(t, requested[6], "stats.json")
}
