package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
)

// AccountRule resolves the account of a card linked to a case. current is
// the account produced by the rules evaluated before this one.
type AccountRule interface {
	Resolve(card *model.Card, linked *model.Case, current string) string
}

// CaseAccountRule takes the account of the linked case, falling back to the
// card's own account when the case has none
type CaseAccountRule struct{}

// Resolve implements AccountRule
func (CaseAccountRule) Resolve(card *model.Card, linked *model.Case, current string) string {
	if linked != nil && linked.Account != "" {
		return linked.Account
	}
	if card.Account != "" {
		return card.Account
	}
	return current
}

// KeywordRule routes any card whose summary, labels or case tags mention
// Keyword to Account, regardless of the account resolved so far
type KeywordRule struct {
	Keyword string
	Account string
}

// Resolve implements AccountRule
func (r KeywordRule) Resolve(card *model.Card, linked *model.Case, current string) string {
	if card.Mentions(r.Keyword) {
		return r.Account
	}
	if linked != nil {
		kw := strings.ToLower(r.Keyword)
		for _, tag := range linked.Tags {
			if strings.Contains(strings.ToLower(tag), kw) {
				return r.Account
			}
		}
	}
	return current
}

// AccountRules returns the standard case account rule followed by the
// configured keyword overrides
func AccountRules(config *model.DashboardConfig) []AccountRule {
	rules := []AccountRule{CaseAccountRule{}}
	for _, o := range config.Overrides {
		rules = append(rules, KeywordRule{Keyword: o.Keyword, Account: o.Account})
	}
	return rules
}

// CorrelateOptions controls which cards become records
type CorrelateOptions struct {
	Now         time.Time
	CommentMode model.CommentMode

	// DropEmpty drops cards left without comments after windowing
	DropEmpty bool

	// Account keeps only records of this configured account when set
	Account string

	// Label keeps only cards carrying this label when set
	Label string
}

// Correlator links cards to their cases and resolves their accounts
type Correlator struct {
	config *model.DashboardConfig
	rules  []AccountRule
}

// NewCorrelator creates a new Correlator with the rules derived from config
func NewCorrelator(config *model.DashboardConfig) *Correlator {
	return NewCorrelatorWithRules(config, AccountRules(config))
}

// NewCorrelatorWithRules creates a new Correlator with explicit rules
func NewCorrelatorWithRules(config *model.DashboardConfig, rules []AccountRule) *Correlator {
	return &Correlator{
		config: config,
		rules:  rules,
	}
}

// ResolveAccount runs the rules in order and matches the result against the
// configured accounts
func (c *Correlator) ResolveAccount(card *model.Card, linked *model.Case) (string, bool) {
	account := ""
	for _, rule := range c.rules {
		account = rule.Resolve(card, linked, account)
	}
	return c.config.MatchAccount(account)
}

// Correlate merges every linked card with its case. Cards without a link,
// with an unknown case or with an unconfigured account are skipped. Records
// are returned in card ID order.
func (c *Correlator) Correlate(ctx context.Context, cards model.Cards, cases model.Cases, opts CorrelateOptions) []*model.Record {
	logger := ctxlog.From(ctx)

	var records []*model.Record
	for _, card := range cards.Sorted() {
		if opts.Label != "" && !card.HasLabel(opts.Label) {
			continue
		}

		comments := WindowComments(card.Comments, opts.Now, opts.CommentMode)
		if opts.DropEmpty && len(comments) == 0 {
			continue
		}

		if card.CaseNumber == "" {
			logger.Debug("card has no linked case", "card_id", card.ID)
			continue
		}
		linked, ok := cases[card.CaseNumber]
		if !ok {
			logger.Debug("linked case not found", "card_id", card.ID, "case_id", card.CaseNumber)
			continue
		}

		account, ok := c.ResolveAccount(card, linked)
		if !ok {
			logger.Debug("card account is not configured", "card_id", card.ID, "case_account", linked.Account)
			continue
		}
		if opts.Account != "" && !strings.EqualFold(opts.Account, account) {
			continue
		}

		records = append(records, &model.Record{
			CardID:     card.ID,
			CaseID:     linked.ID,
			Account:    account,
			Status:     card.Status,
			CardStatus: card.CardStatus,
			Summary:    card.Summary,
			Assignee:   card.Assignee,
			Severity:   model.NormalizeSeverity(linked.Severity),
			Labels:     append([]string(nil), card.Labels...),
			Comments:   comments,
		})
	}

	return records
}
