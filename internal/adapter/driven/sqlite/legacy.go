package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.LegacySource = (*LegacySource)(nil)

// legacyTable is the table name used by the desktop-era database.
const legacyTable = "applications"

// legacyColumns are read from the legacy table in this order. Columns the
// legacy schema lacks (job_match in the oldest databases) are selected as NULL.
var legacyColumns = []string{
	"company_name",
	"job_title",
	"location",
	"date_applied",
	"status",
	"salary_range",
	"job_link",
	"contact_person",
	"contact_email",
	"job_match",
	"notes",
	"last_updated",
}

// LegacySource reads application rows from a desktop-era SQLite database.
type LegacySource struct {
	conn *sql.DB
}

// NewLegacySource wraps an open connection to the legacy database. The caller
// owns conn and is responsible for closing it.
func NewLegacySource(conn *sql.DB) *LegacySource {
	return &LegacySource{conn: conn}
}

// Columns returns the column names present in the legacy applications table.
func (s *LegacySource) Columns(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `PRAGMA table_info(`+legacyTable+`)`)
	if err != nil {
		return nil, fmt.Errorf("read legacy table info: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scan legacy column: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy columns: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("legacy table %q not found", legacyTable)
	}

	return columns, nil
}

// ReadApplications returns every legacy row mapped onto the current model.
// A missing or NULL status becomes the default status; a missing job_match
// column, or a value that is not an integer, yields a nil JobMatch.
func (s *LegacySource) ReadApplications(ctx context.Context) ([]model.Application, error) {
	present, err := s.Columns(ctx)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(present))
	for _, name := range present {
		have[name] = true
	}

	selects := make([]string, 0, len(legacyColumns))
	for _, name := range legacyColumns {
		if have[name] {
			selects = append(selects, name)
		} else {
			selects = append(selects, "NULL AS "+name)
		}
	}

	orderBy := ""
	if have["id"] {
		orderBy = " ORDER BY id"
	}
	query := `SELECT ` + strings.Join(selects, ", ") + ` FROM ` + legacyTable + orderBy

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read legacy applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		// job_match is scanned as text: SQLite's dynamic typing lets legacy
		// rows hold '' or other non-integer values in that column.
		var cols [12]sql.NullString
		dest := make([]any, len(cols))
		for i := range cols {
			dest[i] = &cols[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan legacy application: %w", err)
		}

		app := model.Application{
			CompanyName:   cols[0].String,
			JobTitle:      cols[1].String,
			Location:      cols[2].String,
			DateApplied:   cols[3].String,
			Status:        model.Status(cols[4].String),
			SalaryRange:   cols[5].String,
			JobLink:       cols[6].String,
			ContactPerson: cols[7].String,
			ContactEmail:  cols[8].String,
			Notes:         cols[10].String,
			LastUpdated:   cols[11].String,
		}
		if app.Status == "" {
			app.Status = model.DefaultStatus
		}
		if n, err := strconv.Atoi(strings.TrimSpace(cols[9].String)); err == nil {
			app.JobMatch = model.IntPtr(n)
		}

		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy applications: %w", err)
	}

	return apps, nil
}
