package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	cacheCollection = "cache"
)

// cacheDocument is the stored form of one snapshot. Firestore limits a
// document to 1 MiB, which bounds the snapshot size.
type cacheDocument struct {
	Value     []byte    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// Firestore implements CacheStore interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore cache store
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.CacheStore, error) {
	logger := ctxlog.From(ctx)

	// Create client with database ID
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on an invalid project or missing permissions
	_, err = client.Collection(cacheCollection).Doc(types.CacheKeyCases.String()).Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore cache store initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// Get retrieves the blob stored at key
func (f *Firestore) Get(ctx context.Context, key types.CacheKey) ([]byte, error) {
	if key == "" {
		return nil, goerr.New("cache key is empty")
	}

	doc, err := f.client.Collection(cacheCollection).Doc(key.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrCacheMiss, "failed to get cache value",
				goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to get cache value from firestore",
			goerr.V("key", key))
	}

	var stored cacheDocument
	if err := doc.DataTo(&stored); err != nil {
		return nil, goerr.Wrap(err, "failed to decode cache document",
			goerr.V("key", key))
	}

	return stored.Value, nil
}

// Set replaces the blob stored at key
func (f *Firestore) Set(ctx context.Context, key types.CacheKey, value []byte) error {
	if key == "" {
		return goerr.New("cache key is empty")
	}

	doc := cacheDocument{
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.client.Collection(cacheCollection).Doc(key.String()).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save cache value to firestore",
			goerr.V("key", key))
	}

	return nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}
