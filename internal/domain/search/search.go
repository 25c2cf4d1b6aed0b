// Package search implements the free-text and status filter applied to the
// application list.
package search

import (
	"strings"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
)

// StatusAll is the status filter sentinel that disables status filtering.
const StatusAll = "All"

// Criteria matches applications whose company, title, or location contains
// Text (case-insensitive) and whose status equals Status. An empty Text and
// StatusAll match every application.
type Criteria struct {
	Text   string
	Status string
}

// New builds Criteria from raw request parameters. Text is matched literally,
// whitespace included; an empty status is treated as StatusAll.
func New(text, status string) Criteria {
	if status == "" {
		status = StatusAll
	}
	return Criteria{
		Text:   text,
		Status: status,
	}
}

// All returns Criteria that match everything.
func All() Criteria {
	return New("", StatusAll)
}

// IsAll reports whether c applies no filtering at all.
func (c Criteria) IsAll() bool {
	return c.Text == "" && (c.Status == StatusAll || c.Status == "")
}

// Matches reports whether app satisfies both the text and the status predicate.
func (c Criteria) Matches(app model.Application) bool {
	return c.matchesText(app) && c.matchesStatus(app)
}

func (c Criteria) matchesText(app model.Application) bool {
	if c.Text == "" {
		return true
	}

	needle := strings.ToLower(c.Text)
	for _, field := range []string{app.CompanyName, app.JobTitle, app.Location} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (c Criteria) matchesStatus(app model.Application) bool {
	if c.Status == StatusAll || c.Status == "" {
		return true
	}
	return string(app.Status) == c.Status
}

// Filter returns the applications that match c, preserving input order.
func (c Criteria) Filter(apps []model.Application) []model.Application {
	if c.IsAll() {
		return apps
	}

	matched := make([]model.Application, 0, len(apps))
	for _, app := range apps {
		if c.Matches(app) {
			matched = append(matched, app)
		}
	}
	return matched
}
