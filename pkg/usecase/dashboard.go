package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
	"github.com/secmon-lab/caseboard/pkg/service/cache"
)

var _ Dashboard = (*DashboardUseCase)(nil)

// DashboardUseCase provides the read-only queries behind the dashboard.
// Every call reads the latest snapshots; nothing is written back.
type DashboardUseCase struct {
	cache      *cache.Accessor
	config     *model.DashboardConfig
	correlator *Correlator
	now        func() time.Time
}

// DashboardOption configures a DashboardUseCase
type DashboardOption func(*DashboardUseCase)

// WithClock replaces the clock used for the recency windows
func WithClock(now func() time.Time) DashboardOption {
	return func(uc *DashboardUseCase) {
		uc.now = now
	}
}

// NewDashboard creates a new DashboardUseCase instance
func NewDashboard(store interfaces.CacheStore, config *model.DashboardConfig, opts ...DashboardOption) *DashboardUseCase {
	uc := &DashboardUseCase{
		cache:      cache.New(store),
		config:     config,
		correlator: NewCorrelator(config),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// NewCases returns the cases created within the last NewCaseDays days,
// ordered by raw severity, with severities normalized. Cases of equal
// severity keep their snapshot order.
func (uc *DashboardUseCase) NewCases(ctx context.Context) ([]*model.Case, error) {
	cases, found, err := uc.cache.CaseList(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load cases")
	}
	if !found {
		ctxlog.From(ctx).Debug("no cases found in cache")
	}

	today := uc.now().UTC()
	var selected []*model.Case
	for _, c := range cases {
		isNew, err := c.IsNew(today)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to select new cases")
		}
		if isNew {
			selected = append(selected, c)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Severity < selected[j].Severity
	})

	result := make([]*model.Case, 0, len(selected))
	for _, c := range selected {
		result = append(result, c.Normalized())
	}
	return result, nil
}

// NewComments returns the linked cards that still have comments after
// windowing, grouped by account and status
func (uc *DashboardUseCase) NewComments(ctx context.Context, query model.UpdatesQuery) (model.AccountBoard, error) {
	mode := uc.config.GetCommentMode()
	if query.AllComments {
		mode = model.CommentModeAll
	}

	records, err := uc.correlate(ctx, CorrelateOptions{
		CommentMode: mode,
		DropEmpty:   true,
		Account:     query.Account,
	})
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("found detailed cards", "count", len(records))
	return OrganizeCards(records, uc.config.Accounts), nil
}

// TrendingCards returns the linked cards carrying the trending label,
// grouped by account and status. Their comments are not windowed.
func (uc *DashboardUseCase) TrendingCards(ctx context.Context) (model.AccountBoard, error) {
	records, err := uc.correlate(ctx, CorrelateOptions{
		CommentMode: model.CommentModeAll,
		Label:       uc.config.GetTrendingLabel(),
	})
	if err != nil {
		return nil, err
	}

	return OrganizeCards(records, uc.config.Accounts), nil
}

// Summary counts the linked cards per status, case severity and account
func (uc *DashboardUseCase) Summary(ctx context.Context) (*model.CardSummary, error) {
	records, err := uc.correlate(ctx, CorrelateOptions{
		CommentMode: model.CommentModeAll,
	})
	if err != nil {
		return nil, err
	}

	summary := &model.CardSummary{
		ByStatus:   make(map[types.CaseStatus]int),
		BySeverity: make(map[string]int),
		ByAccount:  make(map[string]int),
	}
	for _, s := range types.CaseStatuses() {
		summary.ByStatus[s] = 0
	}
	for _, a := range uc.config.Accounts {
		summary.ByAccount[a] = 0
	}

	for _, r := range records {
		summary.Total++
		summary.ByStatus[r.Status]++
		summary.BySeverity[r.Severity]++
		summary.ByAccount[r.Account]++
	}

	return summary, nil
}

func (uc *DashboardUseCase) correlate(ctx context.Context, opts CorrelateOptions) ([]*model.Record, error) {
	cards, found, err := uc.cache.Cards(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load cards")
	}
	if !found {
		ctxlog.From(ctx).Debug("no cards found in cache")
		return nil, nil
	}

	cases, _, err := uc.cache.Cases(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load cases")
	}

	ctxlog.From(ctx).Debug("found cards", "count", len(cards))

	opts.Now = uc.now().UTC()
	return uc.correlator.Correlate(ctx, cards, cases, opts), nil
}
