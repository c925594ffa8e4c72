package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
	"github.com/secmon-lab/caseboard/pkg/repository"
	"github.com/secmon-lab/caseboard/pkg/service/cache"
	"github.com/secmon-lab/caseboard/pkg/usecase"
)

func TestDashboardNewCases(t *testing.T) {
	ctx := context.Background()

	t.Run("selects cases up to 7 days old ordered by severity", func(t *testing.T) {
		cases := model.Cases{
			"C1": {Severity: "(3) Normal", CreateDate: daysAgo(0)},
			"C2": {Severity: "(1) Urgent", CreateDate: daysAgo(7)},
			"C3": {Severity: "(1) Urgent", CreateDate: daysAgo(8)},
			"C4": {Severity: "(2) High", CreateDate: daysAgo(3)},
			"C5": {Severity: "(1) Urgent", CreateDate: daysAgo(1)},
		}
		uc := usecase.NewDashboard(newTestStore(t, cases, nil), getTestDashboardConfig(), usecase.WithClock(testClock))

		result, err := uc.NewCases(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(result), 4)

		gt.Equal(t, result[0].ID, types.CaseID("C2"))
		gt.Equal(t, result[1].ID, types.CaseID("C5"))
		gt.Equal(t, result[2].ID, types.CaseID("C4"))
		gt.Equal(t, result[3].ID, types.CaseID("C1"))

		gt.Equal(t, result[0].Severity, "Urgent")
		gt.Equal(t, result[2].Severity, "High")
		gt.Equal(t, result[3].Severity, "Normal")
	})

	t.Run("equal severities keep snapshot order", func(t *testing.T) {
		store := repository.NewMemory()
		snapshot := `{
			"C9": {"severity": "(2) High", "createdate": "` + daysAgo(1) + `"},
			"C1": {"severity": "(1) Urgent", "createdate": "` + daysAgo(2) + `"},
			"C5": {"severity": "(2) High", "createdate": "` + daysAgo(3) + `"},
			"C3": {"severity": "(2) High", "createdate": "` + daysAgo(0) + `"}
		}`
		gt.NoError(t, store.Set(ctx, types.CacheKeyCases, []byte(snapshot)))
		uc := usecase.NewDashboard(store, getTestDashboardConfig(), usecase.WithClock(testClock))

		result, err := uc.NewCases(ctx)
		gt.NoError(t, err)
		gt.A(t, result).Length(4)
		gt.Equal(t, result[0].ID, types.CaseID("C1"))
		gt.Equal(t, result[1].ID, types.CaseID("C9"))
		gt.Equal(t, result[2].ID, types.CaseID("C5"))
		gt.Equal(t, result[3].ID, types.CaseID("C3"))
	})

	t.Run("day boundary uses calendar days", func(t *testing.T) {
		// only the calendar date matters, not the time of day
		cases := model.Cases{
			"C1": {Severity: "(1) Urgent", CreateDate: "2024-03-08T00:01:00Z"},
			"C2": {Severity: "(1) Urgent", CreateDate: "2024-03-07T23:59:59Z"},
		}
		uc := usecase.NewDashboard(newTestStore(t, cases, nil), getTestDashboardConfig(), usecase.WithClock(testClock))

		result, err := uc.NewCases(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(result), 1)
		gt.Equal(t, result[0].ID, types.CaseID("C1"))
	})

	t.Run("cached values keep raw severity", func(t *testing.T) {
		cases := model.Cases{
			"C1": {Severity: "(1) Urgent", CreateDate: daysAgo(0)},
		}
		store := newTestStore(t, cases, nil)
		uc := usecase.NewDashboard(store, getTestDashboardConfig(), usecase.WithClock(testClock))

		_, err := uc.NewCases(ctx)
		gt.NoError(t, err)

		cached, _, err := cache.New(store).Cases(ctx)
		gt.NoError(t, err)
		gt.Equal(t, cached["C1"].Severity, "(1) Urgent")
	})

	t.Run("malformed creation date is an error", func(t *testing.T) {
		cases := model.Cases{
			"C1": {Severity: "(1) Urgent", CreateDate: "2024/03/15 10:00"},
		}
		uc := usecase.NewDashboard(newTestStore(t, cases, nil), getTestDashboardConfig(), usecase.WithClock(testClock))

		_, err := uc.NewCases(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidTimestamp))
	})

	t.Run("absent cases yield an empty list", func(t *testing.T) {
		uc := usecase.NewDashboard(repository.NewMemory(), getTestDashboardConfig(), usecase.WithClock(testClock))

		result, err := uc.NewCases(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(result), 0)
	})
}

func TestDashboardNewComments(t *testing.T) {
	ctx := context.Background()

	cases := model.Cases{
		"C1": {Account: "Acme", Severity: "(2) High", CreateDate: daysAgo(20)},
		"C2": {Account: "Globex", Severity: "(4) Low", CreateDate: daysAgo(20)},
	}
	cards := model.Cards{
		"K1": {
			CaseNumber: "C1", Status: types.CaseStatusWaitingOnRedHat,
			Comments: []model.Comment{
				commentAt("recent", 2*time.Hour),
				commentAt("ancient", 40*24*time.Hour),
			},
		},
		"K2": {
			CaseNumber: "C2", Status: types.CaseStatusWaitingOnCustomer,
			Comments: []model.Comment{commentAt("old", 8*24*time.Hour)},
		},
		"K3": {
			CaseNumber: "C2", Status: types.CaseStatusClosed,
		},
	}

	t.Run("recent mode drops cards without recent comments", func(t *testing.T) {
		uc := usecase.NewDashboard(newTestStore(t, cases, cards), getTestDashboardConfig(), usecase.WithClock(testClock))

		board, err := uc.NewComments(ctx, model.UpdatesQuery{})
		gt.NoError(t, err)
		gt.Equal(t, board.Count(), 1)

		record := board["Acme"][types.CaseStatusWaitingOnRedHat]["K1"]
		gt.V(t, record).NotNil()
		gt.Equal(t, len(record.Comments), 1)
		gt.Equal(t, record.Comments[0].Body, "recent")
		gt.Equal(t, record.Severity, "High")

		gt.Equal(t, len(board["Globex"]), 3)
	})

	t.Run("all comments mode", func(t *testing.T) {
		uc := usecase.NewDashboard(newTestStore(t, cases, cards), getTestDashboardConfig(), usecase.WithClock(testClock))

		board, err := uc.NewComments(ctx, model.UpdatesQuery{AllComments: true})
		gt.NoError(t, err)
		gt.Equal(t, board.Count(), 2)
		gt.Equal(t, len(board["Acme"][types.CaseStatusWaitingOnRedHat]["K1"].Comments), 2)
		gt.V(t, board["Globex"][types.CaseStatusWaitingOnCustomer]["K2"]).NotNil()
	})

	t.Run("configured all mode", func(t *testing.T) {
		config := getTestDashboardConfig()
		config.CommentMode = model.CommentModeAll
		uc := usecase.NewDashboard(newTestStore(t, cases, cards), config, usecase.WithClock(testClock))

		board, err := uc.NewComments(ctx, model.UpdatesQuery{})
		gt.NoError(t, err)
		gt.Equal(t, board.Count(), 2)
	})

	t.Run("account filter keeps every account key", func(t *testing.T) {
		uc := usecase.NewDashboard(newTestStore(t, cases, cards), getTestDashboardConfig(), usecase.WithClock(testClock))

		board, err := uc.NewComments(ctx, model.UpdatesQuery{AllComments: true, Account: "Globex"})
		gt.NoError(t, err)
		gt.Equal(t, board.Count(), 1)
		gt.Equal(t, len(board), 2)
		gt.Equal(t, len(board["Acme"][types.CaseStatusWaitingOnRedHat]), 0)
	})

	t.Run("absent cards yield a board of empty buckets", func(t *testing.T) {
		uc := usecase.NewDashboard(newTestStore(t, cases, nil), getTestDashboardConfig(), usecase.WithClock(testClock))

		board, err := uc.NewComments(ctx, model.UpdatesQuery{})
		gt.NoError(t, err)
		gt.Equal(t, board.Count(), 0)
		gt.Equal(t, len(board), 2)
		gt.Equal(t, len(board["Acme"]), 3)
	})

	t.Run("corrupt cards snapshot is an error", func(t *testing.T) {
		store := repository.NewMemory()
		gt.NoError(t, store.Set(ctx, types.CacheKeyCards, []byte(`["not","a","map"]`)))
		uc := usecase.NewDashboard(store, getTestDashboardConfig(), usecase.WithClock(testClock))

		_, err := uc.NewComments(ctx, model.UpdatesQuery{})
		gt.Error(t, err)
	})
}

func TestDashboardTrendingCards(t *testing.T) {
	ctx := context.Background()

	cases := model.Cases{
		"C1": {Account: "Acme", CreateDate: daysAgo(30)},
		"C2": {Account: "Globex", CreateDate: daysAgo(30)},
	}
	cards := model.Cards{
		"K1": {
			CaseNumber: "C1", Status: types.CaseStatusClosed, Labels: []string{"Trends"},
			Comments: []model.Comment{commentAt("old", 60*24*time.Hour)},
		},
		"K2": {
			CaseNumber: "C2", Status: types.CaseStatusClosed, Labels: []string{"Trends"},
		},
		"K3": {
			CaseNumber: "C2", Status: types.CaseStatusClosed, Labels: []string{"trends-other"},
			Comments: []model.Comment{commentAt("fresh", time.Hour)},
		},
	}

	t.Run("default label", func(t *testing.T) {
		uc := usecase.NewDashboard(newTestStore(t, cases, cards), getTestDashboardConfig(), usecase.WithClock(testClock))

		board, err := uc.TrendingCards(ctx)
		gt.NoError(t, err)
		gt.Equal(t, board.Count(), 2)
		gt.Equal(t, len(board["Acme"][types.CaseStatusClosed]["K1"].Comments), 1)
		gt.V(t, board["Globex"][types.CaseStatusClosed]["K2"]).NotNil()
	})

	t.Run("configured label", func(t *testing.T) {
		config := getTestDashboardConfig()
		config.TrendingLabel = "trends-other"
		uc := usecase.NewDashboard(newTestStore(t, cases, cards), config, usecase.WithClock(testClock))

		board, err := uc.TrendingCards(ctx)
		gt.NoError(t, err)
		gt.Equal(t, board.Count(), 1)
		gt.V(t, board["Globex"][types.CaseStatusClosed]["K3"]).NotNil()
	})
}

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()

	cases := model.Cases{
		"C1": {Account: "Acme", Severity: "(1) Urgent", CreateDate: daysAgo(1)},
		"C2": {Account: "Acme", Severity: "(2) High", CreateDate: daysAgo(1)},
	}
	cards := model.Cards{
		"K1": {CaseNumber: "C1", Status: types.CaseStatusClosed},
		"K2": {CaseNumber: "C2", Status: types.CaseStatusClosed},
		"K3": {CaseNumber: "C1", Status: types.CaseStatusWaitingOnCustomer},
		"K4": {CaseNumber: ""},
	}
	uc := usecase.NewDashboard(newTestStore(t, cases, cards), getTestDashboardConfig(), usecase.WithClock(testClock))

	summary, err := uc.Summary(ctx)
	gt.NoError(t, err)
	gt.Equal(t, summary.Total, 3)
	gt.Equal(t, summary.ByStatus[types.CaseStatusClosed], 2)
	gt.Equal(t, summary.ByStatus[types.CaseStatusWaitingOnCustomer], 1)
	gt.Equal(t, summary.ByStatus[types.CaseStatusWaitingOnRedHat], 0)
	gt.Equal(t, summary.BySeverity["Urgent"], 2)
	gt.Equal(t, summary.BySeverity["High"], 1)
	gt.Equal(t, summary.ByAccount["Acme"], 3)
	gt.Equal(t, summary.ByAccount["Globex"], 0)
}

func TestDashboardScenario(t *testing.T) {
	ctx := context.Background()

	cases := model.Cases{
		"C1": {Account: "Acme", Severity: "(1) Urgent", Problem: "pods crash", CreateDate: daysAgo(0)},
		"C2": {Account: "Globex", Severity: "(3) Normal", Problem: "slow api", CreateDate: daysAgo(10)},
	}
	cards := model.Cards{
		"K1": {
			Summary: "crash loop", CaseNumber: "C1", Status: types.CaseStatusClosed,
			Comments: []model.Comment{commentAt("fix at https://fix.example.com", 24*time.Hour)},
		},
		"K2": {
			Summary: "latency", CaseNumber: "C2", Status: types.CaseStatusWaitingOnCustomer,
			Comments: []model.Comment{commentAt("waiting for logs", 24*time.Hour)},
		},
	}
	uc := usecase.NewDashboard(newTestStore(t, cases, cards), getTestDashboardConfig(), usecase.WithClock(testClock))

	newCases, err := uc.NewCases(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(newCases), 1)
	gt.Equal(t, newCases[0].ID, types.CaseID("C1"))
	gt.Equal(t, newCases[0].Severity, "Urgent")

	board, err := uc.NewComments(ctx, model.UpdatesQuery{})
	gt.NoError(t, err)
	gt.Equal(t, board.Count(), 2)

	record, account, status, ok := board.Find("K1")
	gt.True(t, ok)
	gt.Equal(t, account, "Acme")
	gt.Equal(t, status, types.CaseStatusClosed)
	gt.Equal(t, record.Comments[0].Body,
		`fix at <a href="https://fix.example.com" target="_blank">https://fix.example.com</a>`)

	_, account, status, ok = board.Find("K2")
	gt.True(t, ok)
	gt.Equal(t, account, "Globex")
	gt.Equal(t, status, types.CaseStatusWaitingOnCustomer)

	for _, acct := range []string{"Acme", "Globex"} {
		for _, s := range types.CaseStatuses() {
			_, exists := board[acct][s]
			gt.True(t, exists)
		}
	}

	first, err := json.Marshal(board)
	gt.NoError(t, err)
	again, err := uc.NewComments(ctx, model.UpdatesQuery{})
	gt.NoError(t, err)
	second, err := json.Marshal(again)
	gt.NoError(t, err)
	gt.Equal(t, string(second), string(first))
}
