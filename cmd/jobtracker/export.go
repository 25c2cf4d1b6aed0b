package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/jobtracker/internal/application"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every application to a CSV file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "output file (default: job_applications_DDMMYYYY.csv, \"-\" for stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, logger, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	_, _, exporter := newRecordServices(cfg, db)

	path := exportPath
	if path == "" {
		path = exporter.FileName()
	}

	n, err := writeExport(ctx, exporter, path, cmd.OutOrStdout())
	if err != nil {
		logger.Error("export failed", "path", path, "error", err)
		return err
	}

	logger.Info("applications exported", "path", path, "records", n)
	if path != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", n, path)
	}
	return nil
}

// writeExport renders the complete CSV before touching the destination. A
// path of "-" writes to stdout; any other path is replaced atomically, so a
// failed export leaves an existing file as it was.
func writeExport(ctx context.Context, exporter *application.ExportService, path string, stdout io.Writer) (int, error) {
	var buf bytes.Buffer
	n, err := exporter.Export(ctx, &buf)
	if err != nil {
		return 0, err
	}

	if path == "-" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			return 0, fmt.Errorf("write export: %w", err)
		}
		return n, nil
	}

	if err := replaceFile(path, buf.Bytes()); err != nil {
		return 0, err
	}
	return n, nil
}

// replaceFile writes data to a temp file beside path and renames it into place.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jobtracker-export-*")
	if err != nil {
		return fmt.Errorf("create temp export file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("set export permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move export into place: %w", err)
	}
	return nil
}
