package model

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/secmon-lab/caseboard/pkg/domain/types"
)

// Card represents a work-tracking card linked to a support case
type Card struct {
	ID         types.CardID     `json:"id,omitempty"`
	Summary    string           `json:"summary"`
	Account    string           `json:"account"`
	Status     types.CaseStatus `json:"case_status"`
	CardStatus string           `json:"card_status"`
	Assignee   string           `json:"assignee"`
	Labels     []string         `json:"labels"`
	CaseNumber types.CaseID     `json:"case_number"`
	Comments   []Comment        `json:"comments"`
}

// HasLabel checks if the card carries the label (exact match)
func (c *Card) HasLabel(label string) bool {
	for _, l := range c.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Mentions checks if the summary or any label contains keyword, ignoring case
func (c *Card) Mentions(keyword string) bool {
	kw := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(c.Summary), kw) {
		return true
	}
	for _, l := range c.Labels {
		if strings.Contains(strings.ToLower(l), kw) {
			return true
		}
	}
	return false
}

// Cards is the cached card snapshot keyed by card ID
type Cards map[types.CardID]*Card

// UnmarshalJSON decodes the snapshot and fills each card ID from its key
func (c *Cards) UnmarshalJSON(data []byte) error {
	var raw map[types.CardID]*Card
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for id, v := range raw {
		if v == nil {
			delete(raw, id)
			continue
		}
		v.ID = id
	}
	*c = raw
	return nil
}

// Sorted returns the cards ordered by card ID
func (c Cards) Sorted() []*Card {
	result := make([]*Card, 0, len(c))
	for _, v := range c {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}
