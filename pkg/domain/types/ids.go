package types

import "github.com/m-mizutani/goerr/v2"

// CaseID is the case number assigned by the case-management system
type CaseID string

// String returns the string representation of the case ID
func (id CaseID) String() string {
	return string(id)
}

// Validate checks if the case ID is valid (non-empty)
func (id CaseID) Validate() error {
	if id == "" {
		return goerr.New("case ID cannot be empty")
	}
	return nil
}

// CardID is the key of a card on the ticketing board (e.g. "KNIECO-1234")
type CardID string

// String returns the string representation of the card ID
func (id CardID) String() string {
	return string(id)
}

// Validate checks if the card ID is valid (non-empty)
func (id CardID) Validate() error {
	if id == "" {
		return goerr.New("card ID cannot be empty")
	}
	return nil
}
