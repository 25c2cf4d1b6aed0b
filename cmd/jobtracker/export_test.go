package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqliteadapter "github.com/ericfisherdev/jobtracker/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/jobtracker/internal/application"
	"github.com/ericfisherdev/jobtracker/internal/domain/model"
)

func newTestExporter(t *testing.T) (*application.ExportService, *sqliteadapter.DB) {
	t.Helper()
	ctx := context.Background()

	db, err := sqliteadapter.NewDB(ctx, filepath.Join(t.TempDir(), "jobtracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqliteadapter.RunMigrations(db.Writer))

	return application.NewExportService(sqliteadapter.NewApplicationRepo(db), application.RealClock{}), db
}

func TestWriteExport_File(t *testing.T) {
	ctx := context.Background()
	exporter, db := newTestExporter(t)

	_, err := sqliteadapter.NewApplicationRepo(db).Create(ctx, model.Application{
		CompanyName: "Acme",
		JobTitle:    "Engineer",
		DateApplied: "01/10/2026",
		Status:      model.StatusApplied,
		LastUpdated: "01/10/2026 10:00:00",
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("older export\n"), 0o644))

	n, err := writeExport(ctx, exporter, path, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Company Name,Job Title")
	assert.Contains(t, string(data), "Acme,Engineer")
	assert.NotContains(t, string(data), "older export")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file left behind")
}

func TestWriteExport_Stdout(t *testing.T) {
	exporter, _ := newTestExporter(t)

	var out bytes.Buffer
	n, err := writeExport(context.Background(), exporter, "-", &out)

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, out.String(), "Company Name,Job Title")
}

// TestWriteExport_StorageFaultKeepsExistingFile verifies that a failed read
// neither truncates nor replaces an earlier export at the same path.
func TestWriteExport_StorageFaultKeepsExistingFile(t *testing.T) {
	ctx := context.Background()
	exporter, db := newTestExporter(t)

	_, err := db.Writer.ExecContext(ctx, `DROP TABLE applications`)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous good export\n"), 0o644))

	_, err = writeExport(ctx, exporter, path, nil)

	require.Error(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous good export\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteExport_StorageFaultCreatesNoFile(t *testing.T) {
	ctx := context.Background()
	exporter, db := newTestExporter(t)

	_, err := db.Writer.ExecContext(ctx, `DROP TABLE applications`)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.csv")
	_, err = writeExport(ctx, exporter, path, nil)

	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
