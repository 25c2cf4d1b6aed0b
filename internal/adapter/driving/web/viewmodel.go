package web

import (
	"html/template"
	"strconv"
	"strings"

	vm "github.com/ericfisherdev/jobtracker/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/jobtracker/internal/application"
	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/search"
)

// statusClass returns the CSS class for a status badge, e.g. "status-phone-screen".
func statusClass(status string) string {
	if status == "" {
		return "status-unknown"
	}
	return "status-" + strings.ReplaceAll(strings.ToLower(status), " ", "-")
}

// stars renders a rating as filled and empty stars. Ratings outside 1-5 are
// shown as a plain number.
func stars(rating int) string {
	if rating < model.MinJobMatch || rating > model.MaxJobMatch {
		return strconv.Itoa(rating)
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", model.MaxJobMatch-rating)
}

// toApplicationRowViewModel converts a domain Application to a list row.
func toApplicationRowViewModel(app model.Application) vm.ApplicationRowViewModel {
	id := strconv.FormatInt(app.ID, 10)

	match := ""
	if app.JobMatch != nil {
		match = stars(*app.JobMatch)
	}

	return vm.ApplicationRowViewModel{
		ID:          app.ID,
		CompanyName: app.CompanyName,
		JobTitle:    app.JobTitle,
		Location:    app.Location,
		DateApplied: app.DateApplied,
		Status:      string(app.Status),
		StatusClass: statusClass(string(app.Status)),
		JobMatch:    match,
		ViewPath:    "/view/" + id,
		EditPath:    "/edit/" + id,
		DeletePath:  "/delete/" + id,
	}
}

func toApplicationRowViewModels(apps []model.Application) []vm.ApplicationRowViewModel {
	rows := make([]vm.ApplicationRowViewModel, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, toApplicationRowViewModel(app))
	}
	return rows
}

// toDetailViewModel converts a domain Application to the single record page.
func toDetailViewModel(app model.Application, csrf string) vm.DetailViewModel {
	match := ""
	if app.JobMatch != nil {
		match = strconv.Itoa(*app.JobMatch)
	}

	return vm.DetailViewModel{
		ApplicationRowViewModel: toApplicationRowViewModel(app),
		SalaryRange:             app.SalaryRange,
		JobLink:                 app.JobLink,
		ContactPerson:           app.ContactPerson,
		ContactEmail:            app.ContactEmail,
		JobMatchValue:           match,
		LastUpdated:             app.LastUpdated,
		Notes:                   app.Notes,
		NotesHTML:               template.HTML(RenderMarkdown(app.Notes)), //nolint:gosec // sanitized by bluemonday
		CSRFToken:               csrf,
	}
}

func toStatusCountViewModels(counts []application.StatusCount) []vm.StatusCountViewModel {
	vms := make([]vm.StatusCountViewModel, 0, len(counts))
	for _, sc := range counts {
		vms = append(vms, vm.StatusCountViewModel{
			Status:      string(sc.Status),
			StatusClass: statusClass(string(sc.Status)),
			Count:       sc.Count,
		})
	}
	return vms
}

// toStatsViewModel converts an application Summary to the statistics page.
func toStatsViewModel(s application.Summary) vm.StatsViewModel {
	matches := make([]vm.MatchCountViewModel, 0, len(s.MatchCounts))
	for _, mc := range s.MatchCounts {
		matches = append(matches, vm.MatchCountViewModel{Rating: mc.Rating, Stars: stars(mc.Rating), Count: mc.Count})
	}

	return vm.StatsViewModel{
		Total:        s.Total,
		StatusCounts: toStatusCountViewModels(s.StatusCounts),
		MatchCounts:  matches,
		Recent:       toApplicationRowViewModels(s.Recent),
	}
}

// toIndexViewModel assembles the list page. Total and status counts describe
// the whole collection, not just the filtered rows.
func toIndexViewModel(apps []model.Application, s application.Summary, c search.Criteria, csrf string) vm.IndexViewModel {
	options := []vm.OptionViewModel{{Value: search.StatusAll, Label: "All Statuses", Selected: c.Status == search.StatusAll}}
	for _, status := range model.KnownStatuses {
		options = append(options, vm.OptionViewModel{
			Value:    string(status),
			Label:    string(status),
			Selected: c.Status == string(status),
		})
	}

	return vm.IndexViewModel{
		Rows:          toApplicationRowViewModels(apps),
		Total:         s.Total,
		StatusCounts:  toStatusCountViewModels(s.StatusCounts),
		Search:        c.Text,
		StatusFilter:  c.Status,
		StatusOptions: options,
		CSRFToken:     csrf,
	}
}

// toFormViewModel builds the add/edit form from the submitted or stored values.
// A status outside the known vocabulary is kept as an extra option so editing
// a record does not silently change it.
func toFormViewModel(in application.RecordInput, errs *application.ValidationError) vm.FormViewModel {
	current := in.Status
	if current == "" {
		current = string(model.DefaultStatus)
	}

	statusOptions := make([]vm.OptionViewModel, 0, len(model.KnownStatuses)+1)
	if !model.Status(current).IsKnown() {
		statusOptions = append(statusOptions, vm.OptionViewModel{Value: current, Label: current, Selected: true})
	}
	for _, status := range model.KnownStatuses {
		statusOptions = append(statusOptions, vm.OptionViewModel{
			Value:    string(status),
			Label:    string(status),
			Selected: current == string(status),
		})
	}

	matchOptions := []vm.OptionViewModel{{Value: "", Label: "Not rated", Selected: in.JobMatch == ""}}
	known := in.JobMatch == ""
	for rating := model.MinJobMatch; rating <= model.MaxJobMatch; rating++ {
		value := strconv.Itoa(rating)
		selected := in.JobMatch == value
		known = known || selected
		matchOptions = append(matchOptions, vm.OptionViewModel{
			Value:    value,
			Label:    stars(rating),
			Selected: selected,
		})
	}
	if !known {
		matchOptions = append(matchOptions, vm.OptionViewModel{Value: in.JobMatch, Label: in.JobMatch, Selected: true})
	}

	form := vm.FormViewModel{
		CompanyName:   in.CompanyName,
		JobTitle:      in.JobTitle,
		Location:      in.Location,
		DateApplied:   in.DateApplied,
		SalaryRange:   in.SalaryRange,
		JobLink:       in.JobLink,
		ContactPerson: in.ContactPerson,
		ContactEmail:  in.ContactEmail,
		JobMatch:      in.JobMatch,
		Notes:         in.Notes,
		StatusOptions: statusOptions,
		MatchOptions:  matchOptions,
		Errors:        map[string]string{},
	}

	if errs != nil {
		for _, f := range errs.Fields {
			form.Errors[f.Field] = f.Message
		}
	}

	return form
}
