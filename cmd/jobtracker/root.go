package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/ericfisherdev/jobtracker/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/jobtracker/internal/application"
	"github.com/ericfisherdev/jobtracker/internal/config"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "jobtracker",
	Short: "Track job applications",
	Long:  "Job Tracker records job applications in a local SQLite database and serves a web GUI for them.",
	// Default to `serve` so that `jobtracker` with no args runs the server.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging (overrides JOBTRACKER_LOG_LEVEL)")
}

// setupLogger builds the process logger from cfg. --debug forces debug level.
func setupLogger(cfg *config.Config, w io.Writer, dbg bool) *slog.Logger {
	level := cfg.Level()
	if dbg {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// bootstrap loads configuration, builds the logger and opens the migrated
// database. The caller must close the returned DB.
func bootstrap(ctx context.Context) (*config.Config, *slog.Logger, *sqliteadapter.DB, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return nil, nil, nil, err
	}

	logger := setupLogger(cfg, os.Stderr, debug)
	slog.SetDefault(logger)

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		return nil, nil, nil, err
	}

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		logger.Error("failed to run migrations", "error", err)
		_ = db.Close()
		return nil, nil, nil, err
	}

	version, dirty, err := sqliteadapter.SchemaVersion(db.Writer)
	if err != nil {
		logger.Error("failed to read schema version", "error", err)
		_ = db.Close()
		return nil, nil, nil, err
	}
	logger.Info("database ready", "path", db.Path(), "schema_version", version, "dirty", dirty)

	return cfg, logger, db, nil
}

// closeDB closes db, logging any error.
func closeDB(db *sqliteadapter.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("error closing database", "error", err)
	}
}

// newRecordServices wires the record, stats and export services over db.
func newRecordServices(cfg *config.Config, db *sqliteadapter.DB) (*application.RecordService, *application.StatsService, *application.ExportService) {
	store := sqliteadapter.NewApplicationRepo(db)
	clock := application.RealClock{}
	return application.NewRecordService(store, clock, cfg.StrictValidation),
		application.NewStatsService(store),
		application.NewExportService(store, clock)
}
