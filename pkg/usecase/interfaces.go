package usecase

//go:generate moq -out mocks/dashboard_mock.go -pkg mocks . Dashboard

import (
	"context"

	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
)

// Dashboard defines the read-only dashboard queries
type Dashboard interface {
	// NewCases returns the recently created cases ordered by severity
	NewCases(ctx context.Context) ([]*model.Case, error)

	// NewComments returns the board of cards with comments selected by query
	NewComments(ctx context.Context, query model.UpdatesQuery) (model.AccountBoard, error)

	// TrendingCards returns the board of cards carrying the trending label
	TrendingCards(ctx context.Context) (model.AccountBoard, error)

	// Summary returns card counts per status, severity and account
	Summary(ctx context.Context) (*model.CardSummary, error)
}

// Warmer defines the cache bootstrap operations
type Warmer interface {
	// Warm populates cache keys that hold no value
	Warm(ctx context.Context) ([]types.CacheKey, error)

	// Seed writes synthetic data for count cases
	Seed(ctx context.Context, count int, overwrite bool) ([]types.CacheKey, error)
}
