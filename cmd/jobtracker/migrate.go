package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/ericfisherdev/jobtracker/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/jobtracker/internal/application"
)

var legacySource string

var migrateCmd = &cobra.Command{
	Use:   "migrate-legacy",
	Short: "Import records from a desktop-era database",
	Long: "Reads every row of the applications table in a legacy SQLite database and " +
		"appends it to the current database. Rows missing required fields are reported and skipped.",
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&legacySource, "source", "", "path to the legacy database file (required)")
	_ = migrateCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if legacySource == "" {
		return errors.New("--source must not be empty")
	}

	ctx := cmd.Context()
	_, logger, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	legacy, err := sqliteadapter.OpenReadOnly(ctx, legacySource)
	if err != nil {
		logger.Error("failed to open legacy database", "path", legacySource, "error", err)
		return err
	}
	defer func() { _ = legacy.Close() }()

	svc := application.NewMigrationService(
		sqliteadapter.NewLegacySource(legacy),
		sqliteadapter.NewApplicationRepo(db),
	)

	report, err := svc.Run(ctx)
	if err != nil {
		logger.Error("legacy migration failed", "error", err)
		return err
	}

	for _, f := range report.Failures {
		logger.Warn("legacy record skipped", "company", f.CompanyName, "reason", f.Reason)
	}
	logger.Info("legacy migration complete",
		"found", report.Found,
		"migrated", report.Migrated,
		"failed", report.Failed(),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Found %d records in legacy database\n", report.Found)
	fmt.Fprintf(out, "Migrated %d records\n", report.Migrated)
	if report.Failed() > 0 {
		fmt.Fprintf(out, "Failed to migrate %d records\n", report.Failed())
	}
	return nil
}
