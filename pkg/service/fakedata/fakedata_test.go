package fakedata_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
	"github.com/secmon-lab/caseboard/pkg/repository"
	"github.com/secmon-lab/caseboard/pkg/service/fakedata"
	"github.com/secmon-lab/caseboard/pkg/usecase"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newGenerator(seed int64) *fakedata.Generator {
	return fakedata.New([]string{"Acme", "Globex"},
		fakedata.WithSeed(seed),
		fakedata.WithClock(func() time.Time { return fixedNow }),
	)
}

func TestGenerate(t *testing.T) {
	data, err := newGenerator(42).Generate(10)
	gt.NoError(t, err)

	for _, key := range types.CacheKeys() {
		_, ok := data[key]
		gt.True(t, ok)
	}

	cases, ok := data[types.CacheKeyCases].(model.Cases)
	gt.True(t, ok)
	gt.Equal(t, len(cases), 10)

	cards, ok := data[types.CacheKeyCards].(model.Cards)
	gt.True(t, ok)
	gt.Equal(t, len(cards), 10)

	for _, c := range cases {
		created, err := c.CreatedAt()
		gt.NoError(t, err)
		gt.True(t, !created.After(fixedNow))
		gt.B(t, c.Account == "Acme" || c.Account == "Globex").True()
	}

	for _, card := range cards {
		linked, ok := cases[card.CaseNumber]
		gt.True(t, ok)
		gt.Equal(t, card.Account, linked.Account)
		gt.True(t, card.Status.IsValid())
		for _, comment := range card.Comments {
			gt.True(t, !comment.Timestamp.After(fixedNow))
		}
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	first, err := newGenerator(7).Generate(5)
	gt.NoError(t, err)
	second, err := newGenerator(7).Generate(5)
	gt.NoError(t, err)

	a, err := json.Marshal(first)
	gt.NoError(t, err)
	b, err := json.Marshal(second)
	gt.NoError(t, err)
	gt.Equal(t, string(a), string(b))
}

func TestGenerateEdgeCases(t *testing.T) {
	t.Run("zero cases", func(t *testing.T) {
		data, err := newGenerator(1).Generate(0)
		gt.NoError(t, err)
		gt.Equal(t, len(data[types.CacheKeyCases].(model.Cases)), 0)
		gt.Equal(t, len(data), 8)
	})

	t.Run("negative count", func(t *testing.T) {
		_, err := newGenerator(1).Generate(-1)
		gt.Error(t, err)
	})

	t.Run("company names without configured accounts", func(t *testing.T) {
		data, err := fakedata.New(nil, fakedata.WithSeed(3)).Generate(3)
		gt.NoError(t, err)
		for _, c := range data[types.CacheKeyCases].(model.Cases) {
			gt.True(t, c.Account != "")
		}
	})
}

func TestGenerateStatsMatchCases(t *testing.T) {
	data, err := newGenerator(7).Generate(30)
	gt.NoError(t, err)

	stats, ok := data[types.CacheKeyStats].(fakedata.Stats)
	gt.True(t, ok)

	var newCases int
	for _, c := range data[types.CacheKeyCases].(model.Cases) {
		isNew, err := c.IsNew(fixedNow)
		gt.NoError(t, err)
		if isNew {
			newCases++
		}
	}
	gt.Equal(t, stats.NewCases, newCases)
}

func TestSeededCacheServesDashboard(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()
	config := &model.DashboardConfig{Accounts: []string{"Acme", "Globex"}}

	written, err := usecase.NewWarmer(store, nil, newGenerator(11)).Seed(ctx, 20, false)
	gt.NoError(t, err)
	gt.Equal(t, len(written), 8)

	dashboard := usecase.NewDashboard(store, config, usecase.WithClock(func() time.Time { return fixedNow }))

	newCases, err := dashboard.NewCases(ctx)
	gt.NoError(t, err)
	for _, c := range newCases {
		isNew, err := c.IsNew(fixedNow)
		gt.NoError(t, err)
		gt.True(t, isNew)
	}

	board, err := dashboard.NewComments(ctx, model.UpdatesQuery{AllComments: true})
	gt.NoError(t, err)
	gt.Equal(t, len(board), 2)

	summary, err := dashboard.Summary(ctx)
	gt.NoError(t, err)
	gt.Equal(t, summary.Total, 20)
}
