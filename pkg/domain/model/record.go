package model

import "github.com/secmon-lab/caseboard/pkg/domain/types"

// Record is a card merged with its linked case
type Record struct {
	CardID     types.CardID     `json:"card_id"`
	CaseID     types.CaseID     `json:"case_id"`
	Account    string           `json:"account"`
	Status     types.CaseStatus `json:"status"`
	CardStatus string           `json:"card_status"`
	Summary    string           `json:"summary"`
	Assignee   string           `json:"assignee"`
	Severity   string           `json:"severity"`
	Labels     []string         `json:"labels"`
	Comments   []Comment        `json:"comments"`
}

// StatusBucket holds the records of one status keyed by card ID
type StatusBucket map[types.CardID]*Record

// AccountBoard groups records by account, then by status
type AccountBoard map[string]map[types.CaseStatus]StatusBucket

// Count returns the number of records on the board
func (b AccountBoard) Count() int {
	n := 0
	for _, statuses := range b {
		for _, bucket := range statuses {
			n += len(bucket)
		}
	}
	return n
}

// Find returns the record with the card ID and where it is placed
func (b AccountBoard) Find(id types.CardID) (*Record, string, types.CaseStatus, bool) {
	for account, statuses := range b {
		for status, bucket := range statuses {
			if r, ok := bucket[id]; ok {
				return r, account, status, true
			}
		}
	}
	return nil, "", "", false
}

// CardSummary counts cards per status and per case severity
type CardSummary struct {
	Total      int                      `json:"total"`
	ByStatus   map[types.CaseStatus]int `json:"by_status"`
	BySeverity map[string]int           `json:"by_severity"`
	ByAccount  map[string]int           `json:"by_account"`
}

// UpdatesQuery selects the cards shown on the updates board
type UpdatesQuery struct {
	// AllComments disables the recent comment window
	AllComments bool

	// Account limits the result to one configured account
	Account string
}
