// Package viewmodel defines presentation-ready structs for the page templates.
// View models decouple template rendering from domain model types.
package viewmodel

import "html/template"

// FlashViewModel is a one-shot message shown at the top of the next page.
type FlashViewModel struct {
	Kind    string // "success", "error" or "info"
	Message string
}

// LayoutViewModel holds the data rendered by the page shell.
type LayoutViewModel struct {
	Title     string
	Username  string // empty when anonymous; hides the navigation
	CSRFToken string
	Flash     *FlashViewModel
}

// OptionViewModel is one entry of a select element.
type OptionViewModel struct {
	Value    string
	Label    string
	Selected bool
}

// StatusCountViewModel is one row of a status breakdown.
type StatusCountViewModel struct {
	Status      string
	StatusClass string
	Count       int
}

// MatchCountViewModel is one row of the match rating breakdown.
type MatchCountViewModel struct {
	Rating int
	Stars  string
	Count  int
}

// ApplicationRowViewModel holds presentation-ready data for one record in a list.
type ApplicationRowViewModel struct {
	ID          int64
	CompanyName string
	JobTitle    string
	Location    string
	DateApplied string
	Status      string
	StatusClass string
	JobMatch    string // stars, or empty when unrated
	ViewPath    string
	EditPath    string
	DeletePath  string
}

// LoginViewModel holds the data for the login page.
type LoginViewModel struct {
	CSRFToken string
	Username  string
}

// IndexViewModel holds all data needed to render the application list.
type IndexViewModel struct {
	Rows          []ApplicationRowViewModel
	Total         int
	StatusCounts  []StatusCountViewModel
	Search        string
	StatusFilter  string
	StatusOptions []OptionViewModel
	CSRFToken     string
}

// FormViewModel holds the data for the add and edit forms. Field values are
// echoed back verbatim when validation fails.
type FormViewModel struct {
	Heading       string
	Action        string
	SubmitLabel   string
	CancelPath    string
	CSRFToken     string
	CompanyName   string
	JobTitle      string
	Location      string
	DateApplied   string
	SalaryRange   string
	JobLink       string
	ContactPerson string
	ContactEmail  string
	JobMatch      string
	Notes         string
	StatusOptions []OptionViewModel
	MatchOptions  []OptionViewModel
	Errors        map[string]string // keyed by form field name
}

// DetailViewModel holds the data for a single record page.
type DetailViewModel struct {
	ApplicationRowViewModel

	SalaryRange   string
	JobLink       string
	ContactPerson string
	ContactEmail  string
	JobMatchValue string
	LastUpdated   string
	Notes         string
	NotesHTML     template.HTML // sanitized markdown rendering of Notes
	CSRFToken     string
}

// StatsViewModel holds all data needed to render the statistics page.
type StatsViewModel struct {
	Total        int
	StatusCounts []StatusCountViewModel
	MatchCounts  []MatchCountViewModel
	Recent       []ApplicationRowViewModel
}

// NotFoundViewModel holds the data for the 404 page.
type NotFoundViewModel struct {
	Message string
}
