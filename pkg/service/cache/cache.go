// Package cache provides typed access to the snapshot blobs held in a CacheStore.
//
// A key that has never been written is reported as not found rather than as an
// empty value, so a snapshot that is legitimately empty ("{}") stays
// distinguishable from one that still needs to be populated.
package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
)

// Accessor reads and writes snapshots through a CacheStore
type Accessor struct {
	store interfaces.CacheStore
}

// New creates a new Accessor
func New(store interfaces.CacheStore) *Accessor {
	return &Accessor{store: store}
}

// Raw returns the blob stored at key. found is false when the key is absent.
func (a *Accessor) Raw(ctx context.Context, key types.CacheKey) (json.RawMessage, bool, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, goerr.Wrap(err, "failed to read cache", goerr.V("key", key))
	}
	return data, true, nil
}

// Has reports whether key holds a value, even an empty one
func (a *Accessor) Has(ctx context.Context, key types.CacheKey) (bool, error) {
	_, found, err := a.Raw(ctx, key)
	return found, err
}

// Load decodes the snapshot at key into dst. found is false when the key is
// absent, in which case dst is left untouched.
func (a *Accessor) Load(ctx context.Context, key types.CacheKey, dst any) (bool, error) {
	data, found, err := a.Raw(ctx, key)
	if err != nil || !found {
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return true, goerr.Wrap(err, "failed to decode cached snapshot", goerr.V("key", key))
	}
	return true, nil
}

// Put encodes value as JSON and stores it at key, replacing the previous snapshot
func (a *Accessor) Put(ctx context.Context, key types.CacheKey, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return goerr.Wrap(err, "failed to encode snapshot", goerr.V("key", key))
	}
	return a.PutRaw(ctx, key, data)
}

// PutRaw stores an already encoded snapshot at key
func (a *Accessor) PutRaw(ctx context.Context, key types.CacheKey, data []byte) error {
	if !json.Valid(data) {
		return goerr.New("snapshot is not valid JSON", goerr.V("key", key))
	}
	if err := a.store.Set(ctx, key, data); err != nil {
		return goerr.Wrap(err, "failed to write cache", goerr.V("key", key))
	}
	return nil
}

// Cases returns the case snapshot
func (a *Accessor) Cases(ctx context.Context) (model.Cases, bool, error) {
	var cases model.Cases
	found, err := a.Load(ctx, types.CacheKeyCases, &cases)
	if err != nil {
		return nil, found, err
	}
	if cases == nil {
		cases = model.Cases{}
	}
	return cases, found, nil
}

// CaseList returns the case snapshot in document order
func (a *Accessor) CaseList(ctx context.Context) (model.CaseList, bool, error) {
	var cases model.CaseList
	found, err := a.Load(ctx, types.CacheKeyCases, &cases)
	if err != nil {
		return nil, found, err
	}
	return cases, found, nil
}

// Cards returns the card snapshot
func (a *Accessor) Cards(ctx context.Context) (model.Cards, bool, error) {
	var cards model.Cards
	found, err := a.Load(ctx, types.CacheKeyCards, &cards)
	if err != nil {
		return nil, found, err
	}
	if cards == nil {
		cards = model.Cards{}
	}
	return cards, found, nil
}
