package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultTrendingLabel marks cards shown in the trending view
const DefaultTrendingLabel = "Trends"

// CommentMode selects how card comments are filtered
type CommentMode string

const (
	// CommentModeRecent keeps comments younger than CommentWindow
	CommentModeRecent CommentMode = "recent"
	// CommentModeAll keeps every comment
	CommentModeAll CommentMode = "all"
)

// IsValid checks if the mode is known
func (m CommentMode) IsValid() bool {
	return m == CommentModeRecent || m == CommentModeAll
}

// OverrideRule force-assigns cards mentioning Keyword to the Account bucket
type OverrideRule struct {
	Keyword string `yaml:"keyword"`
	Account string `yaml:"account"`
}

// Validate validates the override rule
func (r *OverrideRule) Validate() error {
	if strings.TrimSpace(r.Keyword) == "" {
		return goerr.New("override keyword is required")
	}
	if strings.TrimSpace(r.Account) == "" {
		return goerr.New("override account is required",
			goerr.V("keyword", r.Keyword))
	}
	return nil
}

// DashboardConfig represents the dashboard configuration
type DashboardConfig struct {
	Accounts      []string       `yaml:"accounts"`
	Overrides     []OverrideRule `yaml:"overrides,omitempty"`
	TrendingLabel string         `yaml:"trending_label,omitempty"`
	CommentMode   CommentMode    `yaml:"comment_mode,omitempty"`
}

// Validate validates the dashboard configuration
func (c *DashboardConfig) Validate() error {
	if len(c.Accounts) == 0 {
		return goerr.New("at least one account is required")
	}

	seen := make(map[string]bool)
	for i, account := range c.Accounts {
		name := strings.ToLower(strings.TrimSpace(account))
		if name == "" {
			return goerr.New("account name is empty", goerr.V("index", i))
		}
		if seen[name] {
			return goerr.New("duplicate account", goerr.V("account", account))
		}
		seen[name] = true
	}

	for i, rule := range c.Overrides {
		if err := rule.Validate(); err != nil {
			return goerr.Wrap(err, "invalid override at index", goerr.V("index", i))
		}
		// An override pointing outside the account list could never be shown
		if _, ok := c.MatchAccount(rule.Account); !ok {
			return goerr.New("override account does not match any configured account",
				goerr.V("keyword", rule.Keyword),
				goerr.V("account", rule.Account))
		}
	}

	if c.CommentMode != "" && !c.CommentMode.IsValid() {
		return goerr.New("invalid comment mode", goerr.V("mode", c.CommentMode))
	}

	return nil
}

// MatchAccount returns the first configured account whose name is contained
// in account, ignoring case
func (c *DashboardConfig) MatchAccount(account string) (string, bool) {
	resolved := strings.ToLower(account)
	if resolved == "" {
		return "", false
	}
	for _, name := range c.Accounts {
		if strings.Contains(resolved, strings.ToLower(name)) {
			return name, true
		}
	}
	return "", false
}

// GetTrendingLabel returns the trending label or its default
func (c *DashboardConfig) GetTrendingLabel() string {
	if c.TrendingLabel == "" {
		return DefaultTrendingLabel
	}
	return c.TrendingLabel
}

// GetCommentMode returns the comment mode or its default
func (c *DashboardConfig) GetCommentMode() CommentMode {
	if c.CommentMode == "" {
		return CommentModeRecent
	}
	return c.CommentMode
}
