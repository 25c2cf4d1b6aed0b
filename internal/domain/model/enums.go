package model

// Status is the current stage label of a job application. Storage does not
// constrain it to the known vocabulary; any string round-trips.
type Status string

const (
	StatusApplied         Status = "Applied"
	StatusPhoneScreen     Status = "Phone Screen"
	StatusFirstInterview  Status = "First Interview"
	StatusSecondInterview Status = "Second Interview"
	StatusThirdInterview  Status = "Third Interview"
	StatusFinalInterview  Status = "Final Interview"
	StatusOfferReceived   Status = "Offer Received"
	StatusRejected        Status = "Rejected"
	StatusGhosted         Status = "Ghosted"
	StatusWithdrawn       Status = "Withdrawn"
)

// DefaultStatus is assigned to records created without a status.
const DefaultStatus = StatusApplied

// KnownStatuses lists the conventional status vocabulary in pipeline order.
// Statistics and form dropdowns iterate it in this order.
var KnownStatuses = []Status{
	StatusApplied,
	StatusPhoneScreen,
	StatusFirstInterview,
	StatusSecondInterview,
	StatusThirdInterview,
	StatusFinalInterview,
	StatusOfferReceived,
	StatusRejected,
	StatusGhosted,
	StatusWithdrawn,
}

// IsKnown reports whether s is one of KnownStatuses (exact, case-sensitive).
func (s Status) IsKnown() bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Match rating bounds. Ratings outside this range are stored but ignored by statistics.
const (
	MinJobMatch = 1
	MaxJobMatch = 5
)
