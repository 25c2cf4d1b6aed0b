package model

// Layouts for the textual date fields. DateApplied defaults to DateLayout;
// LastUpdated is always written with TimestampLayout in local time.
const (
	DateLayout      = "02/01/2006"
	TimestampLayout = "02/01/2006 15:04:05"
)

// Application is one tracked job application. Optional text fields use the
// empty string for "absent"; JobMatch is nil when no rating was given.
type Application struct {
	ID            int64
	CompanyName   string
	JobTitle      string
	Location      string
	DateApplied   string
	Status        Status
	SalaryRange   string
	JobLink       string
	ContactPerson string
	ContactEmail  string
	JobMatch      *int
	Notes         string
	LastUpdated   string
}

// HasMatchInRange reports whether the record carries a rating within
// [MinJobMatch, MaxJobMatch].
func (a Application) HasMatchInRange() bool {
	return a.JobMatch != nil && *a.JobMatch >= MinJobMatch && *a.JobMatch <= MaxJobMatch
}

// JobMatchValue returns the rating, or 0 when absent.
func (a Application) JobMatchValue() int {
	if a.JobMatch == nil {
		return 0
	}
	return *a.JobMatch
}

// IntPtr returns a pointer to v. Convenience for building JobMatch values.
func IntPtr(v int) *int {
	return &v
}
