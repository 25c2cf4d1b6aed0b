package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/jobtracker/internal/application"
	"github.com/ericfisherdev/jobtracker/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// ApplicationResponse is the JSON representation of an application record.
// Absent optional text fields are empty strings; an absent rating is null.
type ApplicationResponse struct {
	ID            int64  `json:"id"`
	CompanyName   string `json:"company_name"`
	JobTitle      string `json:"job_title"`
	Location      string `json:"location"`
	DateApplied   string `json:"date_applied"`
	Status        string `json:"status"`
	SalaryRange   string `json:"salary_range"`
	JobLink       string `json:"job_link"`
	ContactPerson string `json:"contact_person"`
	ContactEmail  string `json:"contact_email"`
	JobMatch      *int   `json:"job_match"`
	Notes         string `json:"notes"`
	LastUpdated   string `json:"last_updated"`
}

// StatusCountResponse is one entry of the status breakdown.
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// MatchCountResponse is one entry of the match rating breakdown.
type MatchCountResponse struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// StatsResponse is the JSON representation of the statistics bundle.
type StatsResponse struct {
	Total        int                   `json:"total"`
	StatusCounts []StatusCountResponse `json:"status_counts"`
	MatchCounts  []MatchCountResponse  `json:"match_counts"`
	Recent       []ApplicationResponse `json:"recent"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toApplicationResponse converts a domain Application to its JSON representation.
func toApplicationResponse(app model.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:            app.ID,
		CompanyName:   app.CompanyName,
		JobTitle:      app.JobTitle,
		Location:      app.Location,
		DateApplied:   app.DateApplied,
		Status:        string(app.Status),
		SalaryRange:   app.SalaryRange,
		JobLink:       app.JobLink,
		ContactPerson: app.ContactPerson,
		ContactEmail:  app.ContactEmail,
		JobMatch:      app.JobMatch,
		Notes:         app.Notes,
		LastUpdated:   app.LastUpdated,
	}
}

// toApplicationResponses converts a list, returning an empty array rather than null.
func toApplicationResponses(apps []model.Application) []ApplicationResponse {
	resp := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, toApplicationResponse(app))
	}
	return resp
}

// toStatsResponse converts an application Summary to its JSON representation.
// All slices are non-nil.
func toStatsResponse(s application.Summary) StatsResponse {
	statuses := make([]StatusCountResponse, 0, len(s.StatusCounts))
	for _, sc := range s.StatusCounts {
		statuses = append(statuses, StatusCountResponse{Status: string(sc.Status), Count: sc.Count})
	}

	matches := make([]MatchCountResponse, 0, len(s.MatchCounts))
	for _, mc := range s.MatchCounts {
		matches = append(matches, MatchCountResponse{Rating: mc.Rating, Count: mc.Count})
	}

	return StatsResponse{
		Total:        s.Total,
		StatusCounts: statuses,
		MatchCounts:  matches,
		Recent:       toApplicationResponses(s.Recent),
	}
}
