package types

// CaseStatus is the workflow state a card inherits from its support case
type CaseStatus string

const (
	CaseStatusWaitingOnRedHat   CaseStatus = "Waiting on Red Hat"
	CaseStatusWaitingOnCustomer CaseStatus = "Waiting on Customer"
	CaseStatusClosed            CaseStatus = "Closed"
)

// String returns the string representation of the status
func (s CaseStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the board statuses
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusWaitingOnRedHat, CaseStatusWaitingOnCustomer, CaseStatusClosed:
		return true
	default:
		return false
	}
}

// CaseStatuses returns the fixed board statuses in display order
func CaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusWaitingOnRedHat,
		CaseStatusWaitingOnCustomer,
		CaseStatusClosed,
	}
}
