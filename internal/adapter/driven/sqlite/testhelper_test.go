package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
)

// testDSN names a shared in-memory database after the running test, so the
// writer and reader pools see the same data and tests stay isolated.
func testDSN(t *testing.T) string {
	t.Helper()
	// WAL mode is not applicable to in-memory databases; omit journal_mode pragma.
	return fmt.Sprintf(
		"file:jobtracker-%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
		url.PathEscape(t.Name()),
	)
}

func openTestPool(t *testing.T, dsn string, maxConns int) *sql.DB {
	t.Helper()

	pool, err := sql.Open("sqlite", dsn)
	require.NoError(t, err, "open test pool")
	pool.SetMaxOpenConns(maxConns)
	require.NoError(t, pool.PingContext(context.Background()), "ping test pool")

	return pool
}

// setupTestDB returns a migrated in-memory DB closed at test cleanup.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := testDSN(t)
	writer := openTestPool(t, dsn, 1)
	reader := openTestPool(t, dsn, 4)
	db := &DB{Writer: writer, Reader: reader, path: dsn}
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(db.Writer), "run migrations")

	return db
}

// seedApplications inserts apps in order and returns their assigned ids.
func seedApplications(t *testing.T, db *DB, apps ...model.Application) []int64 {
	t.Helper()

	repo := NewApplicationRepo(db)
	ids := make([]int64, 0, len(apps))
	for _, app := range apps {
		id, err := repo.Create(context.Background(), app)
		require.NoError(t, err, "seed application %s", app.CompanyName)
		ids = append(ids, id)
	}
	return ids
}
