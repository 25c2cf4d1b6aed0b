package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ApplicationStore = (*ApplicationRepo)(nil)

const applicationColumns = `id, company_name, job_title, location, date_applied, status,
	salary_range, job_link, contact_person, contact_email, job_match, notes, last_updated`

const insertApplicationQuery = `
	INSERT INTO applications (
		company_name, job_title, location, date_applied, status,
		salary_range, job_link, contact_person, contact_email, job_match, notes, last_updated
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// ApplicationRepo is the SQLite implementation of the ApplicationStore port interface.
// Empty optional fields are written as NULL and read back as empty strings.
type ApplicationRepo struct {
	db *DB
}

// NewApplicationRepo creates a new ApplicationRepo backed by the given DB.
func NewApplicationRepo(db *DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Create inserts a new application and returns its assigned id.
func (r *ApplicationRepo) Create(ctx context.Context, app model.Application) (int64, error) {
	result, err := r.db.Writer.ExecContext(ctx, insertApplicationQuery, insertArgs(app)...)
	if err != nil {
		return 0, fmt.Errorf("create application for %s: %w", app.CompanyName, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted application id: %w", err)
	}

	return id, nil
}

// Update overwrites every column except id. Returns ErrApplicationNotFound if
// no row has the given id.
func (r *ApplicationRepo) Update(ctx context.Context, app model.Application) error {
	const query = `
		UPDATE applications SET
			company_name = ?,
			job_title = ?,
			location = ?,
			date_applied = ?,
			status = ?,
			salary_range = ?,
			job_link = ?,
			contact_person = ?,
			contact_email = ?,
			job_match = ?,
			notes = ?,
			last_updated = ?
		WHERE id = ?
	`

	args := append(insertArgs(app), app.ID)
	result, err := r.db.Writer.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update application %d: %w", app.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update application %d: %w", app.ID, driven.ErrApplicationNotFound)
	}

	return nil
}

// Delete permanently removes an application. Returns ErrApplicationNotFound if
// no row has the given id.
func (r *ApplicationRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM applications WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete application %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete application %d: %w", id, driven.ErrApplicationNotFound)
	}

	return nil
}

// Get retrieves a single application by id.
func (r *ApplicationRepo) Get(ctx context.Context, id int64) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`

	app, err := scanApplication(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get application %d: %w", id, driven.ErrApplicationNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get application %d: %w", id, err)
	}

	return app, nil
}

// List returns every application, newest first.
func (r *ApplicationRepo) List(ctx context.Context) ([]model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY id DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, *app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}

	return apps, nil
}

// Import inserts apps inside one writer transaction. A row rejected by the
// database (for example a NOT NULL violation) is recorded as a failure and the
// batch continues; errors outside individual inserts roll everything back.
func (r *ApplicationRepo) Import(ctx context.Context, apps []model.Application) (driven.ImportResult, error) {
	var result driven.ImportResult

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertApplicationQuery)
	if err != nil {
		return result, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, app := range apps {
		if err := ctx.Err(); err != nil {
			return driven.ImportResult{}, fmt.Errorf("import cancelled: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, importArgs(app)...); err != nil {
			result.Failures = append(result.Failures, driven.ImportFailure{
				CompanyName: app.CompanyName,
				Reason:      err.Error(),
			})
			continue
		}
		result.Imported++
	}

	if err := tx.Commit(); err != nil {
		return driven.ImportResult{}, fmt.Errorf("commit import: %w", err)
	}

	return result, nil
}

// insertArgs returns the column values in insertApplicationQuery order.
func insertArgs(app model.Application) []any {
	return []any{
		app.CompanyName,
		app.JobTitle,
		nullString(app.Location),
		app.DateApplied,
		string(app.Status),
		nullString(app.SalaryRange),
		nullString(app.JobLink),
		nullString(app.ContactPerson),
		nullString(app.ContactEmail),
		nullInt(app.JobMatch),
		nullString(app.Notes),
		app.LastUpdated,
	}
}

// importArgs is insertArgs for legacy rows, where empty required fields are
// sent as NULL so the NOT NULL constraints reject incomplete rows.
func importArgs(app model.Application) []any {
	args := insertArgs(app)
	args[0] = nullString(app.CompanyName)
	args[1] = nullString(app.JobTitle)
	args[3] = nullString(app.DateApplied)
	args[11] = nullString(app.LastUpdated)
	return args
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(s scanner) (*model.Application, error) {
	var (
		app                                             model.Application
		status                                          sql.NullString
		location, salary, link, person, email, notesCol sql.NullString
		jobMatch                                        sql.NullInt64
	)

	err := s.Scan(
		&app.ID, &app.CompanyName, &app.JobTitle, &location, &app.DateApplied, &status,
		&salary, &link, &person, &email, &jobMatch, &notesCol, &app.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	app.Status = model.Status(status.String)
	app.Location = location.String
	app.SalaryRange = salary.String
	app.JobLink = link.String
	app.ContactPerson = person.String
	app.ContactEmail = email.String
	app.Notes = notesCol.String
	if jobMatch.Valid {
		app.JobMatch = model.IntPtr(int(jobMatch.Int64))
	}

	return &app, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
