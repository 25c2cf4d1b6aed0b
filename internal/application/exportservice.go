package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
)

// ExportHeader is the first row of every export.
var ExportHeader = []string{
	"Company Name",
	"Job Title",
	"Location",
	"Date Applied",
	"Status",
	"Salary Range",
	"Job Link",
	"Contact Person",
	"Contact Email",
	"Job Match",
	"Notes",
	"Last Updated",
}

// exportDateLayout is the DDMMYYYY stamp in export file names.
const exportDateLayout = "02012006"

// ExportService renders the application collection as CSV.
type ExportService struct {
	store driven.ApplicationStore
	clock Clock
}

// NewExportService creates an ExportService reading from store.
func NewExportService(store driven.ApplicationStore, clock Clock) *ExportService {
	return &ExportService{store: store, clock: clock}
}

// FileName returns the attachment name for an export produced now,
// for example job_applications_14102026.csv.
func (s *ExportService) FileName() string {
	return "job_applications_" + s.clock.Now().Format(exportDateLayout) + ".csv"
}

// Export writes the header and one row per record, newest first, and
// returns the number of records written. The document is rendered in
// memory first; nothing reaches w if reading the store fails.
func (s *ExportService) Export(ctx context.Context, w io.Writer) (int, error) {
	apps, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list applications for export: %w", err)
	}

	doc, err := RenderCSV(apps)
	if err != nil {
		return 0, err
	}

	if _, err := w.Write(doc); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}

	return len(apps), nil
}

// RenderCSV encodes apps under ExportHeader with RFC 4180 quoting.
func RenderCSV(apps []model.Application) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(ExportHeader); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}

	for _, app := range apps {
		if err := cw.Write(exportRow(app)); err != nil {
			return nil, fmt.Errorf("write export row %d: %w", app.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}

	return buf.Bytes(), nil
}

func exportRow(app model.Application) []string {
	match := ""
	if app.JobMatch != nil {
		match = strconv.Itoa(*app.JobMatch)
	}

	return []string{
		app.CompanyName,
		app.JobTitle,
		app.Location,
		app.DateApplied,
		string(app.Status),
		app.SalaryRange,
		app.JobLink,
		app.ContactPerson,
		app.ContactEmail,
		match,
		app.Notes,
		app.LastUpdated,
	}
}
