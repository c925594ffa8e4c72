package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
	"github.com/secmon-lab/caseboard/pkg/repository"
	"github.com/secmon-lab/caseboard/pkg/service/cache"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func testClock() time.Time {
	return testNow
}

func getTestDashboardConfig() *model.DashboardConfig {
	return &model.DashboardConfig{
		Accounts: []string{"Acme", "Globex"},
	}
}

func daysAgo(days int) string {
	return testNow.AddDate(0, 0, -days).Format(model.CaseDateLayout)
}

func commentAt(body string, age time.Duration) model.Comment {
	return model.Comment{Body: body, Timestamp: testNow.Add(-age)}
}

func newTestStore(t *testing.T, cases model.Cases, cards model.Cards) interfaces.CacheStore {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemory()
	accessor := cache.New(store)
	if cases != nil {
		gt.NoError(t, accessor.Put(ctx, types.CacheKeyCases, cases))
	}
	if cards != nil {
		gt.NoError(t, accessor.Put(ctx, types.CacheKeyCards, cards))
	}
	return store
}
