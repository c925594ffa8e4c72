package fakedata

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/interfaces"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
)

const (
	// maxCaseAgeDays bounds how far back synthetic cases are created
	maxCaseAgeDays = 30

	// maxCommentAge bounds how old synthetic comments are
	maxCommentAge = 14 * 24 * time.Hour

	trendingRatio = 0.2
)

var (
	severities   = []string{"1 (Urgent)", "2 (High)", "3 (Normal)", "4 (Low)"}
	cardStatuses = []string{"Backlog", "In Progress", "Code Review", "QE Review", "Done"}
	products     = []string{"OpenShift Container Platform", "Red Hat Enterprise Linux", "OpenStack Platform"}
)

// CaseDetail is the per-case detail snapshot
type CaseDetail struct {
	CritSit       bool     `json:"crit_sit"`
	GroupName     string   `json:"group_name"`
	NotifiedUsers []string `json:"notified_users"`
	RelatedCases  []string `json:"related_cases"`
}

// Bug is a defect-tracker entry attached to a case
type Bug struct {
	Number  string `json:"bugzillaNumber"`
	Link    string `json:"bugzillaLink"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

// Issue is an engineering issue attached to a case
type Issue struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	Updated string `json:"updated"`
}

// Stats is the aggregate snapshot of the case population
type Stats struct {
	OpenCases  int            `json:"open_cases"`
	NewCases   int            `json:"new_cases"`
	Escalated  int            `json:"escalated"`
	BySeverity map[string]int `json:"by_severity"`
	ByStatus   map[string]int `json:"by_status"`
}

// Generator produces a consistent set of synthetic snapshots for every cache key
type Generator struct {
	accounts []string
	seed     int64
	now      func() time.Time
}

var _ interfaces.Generator = (*Generator)(nil)

// Option configures a Generator
type Option func(*Generator)

// WithSeed makes the output reproducible. Zero picks a random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithClock replaces the reference time of generated timestamps
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator assigning cases to the given accounts
func New(accounts []string, opts ...Option) *Generator {
	g := &Generator{
		accounts: accounts,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds snapshots for count cases, each linked to one card
func (g *Generator) Generate(count int) (map[types.CacheKey]any, error) {
	if count < 0 {
		return nil, goerr.New("number of cases must not be negative", goerr.V("count", count))
	}

	faker := gofakeit.New(g.seed)
	now := g.now().UTC().Truncate(time.Second)

	cases := make(model.Cases, count)
	cards := make(model.Cards, count)
	details := make(map[types.CaseID]CaseDetail, count)
	bugs := make(map[types.CaseID][]Bug)
	issues := make(map[types.CaseID][]Issue)
	escalations := []types.CaseID{}
	watchlist := []types.CaseID{}
	stats := Stats{
		BySeverity: make(map[string]int),
		ByStatus:   make(map[string]int),
	}

	for i := 0; i < count; i++ {
		caseID := types.CaseID(fmt.Sprintf("%08d", 3000000+i))
		cardID := types.CardID(fmt.Sprintf("KTB-%d", 1000+i))

		account := g.account(faker)
		status := types.CaseStatuses()[faker.Number(0, len(types.CaseStatuses())-1)]
		severity := faker.RandomString(severities)
		created := now.AddDate(0, 0, -faker.Number(0, maxCaseAgeDays))
		problem := faker.Sentence(6)

		c := &model.Case{
			ID:          caseID,
			Owner:       faker.Name(),
			Severity:    severity,
			Account:     account,
			Problem:     problem,
			Status:      status.String(),
			CreateDate:  created.Format(model.CaseDateLayout),
			LastUpdate:  now.Add(-randomAge(faker, maxCommentAge)).Format(model.CaseDateLayout),
			Description: faker.Paragraph(1, 3, 12, " "),
			Product:     faker.RandomString(products),
			Tags:        []string{faker.HackerNoun()},
		}
		cases[caseID] = c

		var labels []string
		if faker.Float64Range(0, 1) < trendingRatio {
			labels = append(labels, model.DefaultTrendingLabel)
		}
		labels = append(labels, faker.HackerAdjective())

		comments := make([]model.Comment, faker.Number(0, 3))
		for j := range comments {
			comments[j] = model.Comment{
				Body:      faker.Sentence(12) + " " + faker.URL(),
				Timestamp: now.Add(-randomAge(faker, maxCommentAge)),
			}
		}

		cards[cardID] = &model.Card{
			ID:         cardID,
			Summary:    fmt.Sprintf("%s: %s", caseID, problem),
			Account:    account,
			Status:     status,
			CardStatus: faker.RandomString(cardStatuses),
			Assignee:   faker.Email(),
			Labels:     labels,
			CaseNumber: caseID,
			Comments:   comments,
		}

		critSit := faker.Bool()
		details[caseID] = CaseDetail{
			CritSit:       critSit,
			GroupName:     account,
			NotifiedUsers: []string{faker.Email()},
			RelatedCases:  []string{},
		}

		if faker.Bool() {
			bugs[caseID] = []Bug{{
				Number:  fmt.Sprintf("%d", faker.Number(1000000, 2999999)),
				Link:    faker.URL(),
				Summary: faker.Sentence(8),
				Status:  faker.RandomString([]string{"NEW", "ASSIGNED", "POST", "MODIFIED"}),
			}}
		}
		if faker.Bool() {
			issues[caseID] = []Issue{{
				ID:      fmt.Sprintf("OCPBUGS-%d", faker.Number(1000, 99999)),
				URL:     faker.URL(),
				Title:   faker.Sentence(8),
				Status:  faker.RandomString([]string{"New", "In Progress", "Verified"}),
				Updated: now.Add(-randomAge(faker, maxCommentAge)).Format(model.CaseDateLayout),
			}}
		}
		if critSit {
			escalations = append(escalations, caseID)
		}
		if faker.Bool() {
			watchlist = append(watchlist, caseID)
		}

		if status != types.CaseStatusClosed {
			stats.OpenCases++
		}
		isNew, err := c.IsNew(now)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to classify generated case", goerr.V("case_id", caseID))
		}
		if isNew {
			stats.NewCases++
		}
		stats.BySeverity[model.NormalizeSeverity(severity)]++
		stats.ByStatus[status.String()]++
	}
	stats.Escalated = len(escalations)

	return map[types.CacheKey]any{
		types.CacheKeyCases:       cases,
		types.CacheKeyDetails:     details,
		types.CacheKeyBugs:        bugs,
		types.CacheKeyIssues:      issues,
		types.CacheKeyEscalations: escalations,
		types.CacheKeyWatchlist:   watchlist,
		types.CacheKeyCards:       cards,
		types.CacheKeyStats:       stats,
	}, nil
}

func (g *Generator) account(faker *gofakeit.Faker) string {
	if len(g.accounts) == 0 {
		return faker.Company()
	}
	return faker.RandomString(g.accounts)
}

func randomAge(faker *gofakeit.Faker, max time.Duration) time.Duration {
	return time.Duration(faker.IntRange(0, int(max/time.Second))) * time.Second
}
