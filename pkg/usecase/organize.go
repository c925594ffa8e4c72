package usecase

import (
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
)

// OrganizeCards partitions records by account, then by status. Every
// account in accounts and every board status is present, even when empty.
// A record whose account or status is outside those sets gets its own key.
func OrganizeCards(records []*model.Record, accounts []string) model.AccountBoard {
	board := make(model.AccountBoard, len(accounts))
	for _, account := range accounts {
		board[account] = newStatusBuckets()
	}

	for _, r := range records {
		statuses, ok := board[r.Account]
		if !ok {
			statuses = newStatusBuckets()
			board[r.Account] = statuses
		}

		bucket, ok := statuses[r.Status]
		if !ok {
			bucket = model.StatusBucket{}
			statuses[r.Status] = bucket
		}
		bucket[r.CardID] = r
	}

	return board
}

func newStatusBuckets() map[types.CaseStatus]model.StatusBucket {
	statuses := make(map[types.CaseStatus]model.StatusBucket)
	for _, s := range types.CaseStatuses() {
		statuses[s] = model.StatusBucket{}
	}
	return statuses
}
