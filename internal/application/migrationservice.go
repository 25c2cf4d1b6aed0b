package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
)

// MigrationReport summarizes a legacy import.
type MigrationReport struct {
	Found    int
	Migrated int
	Failures []driven.ImportFailure
}

// Failed returns the number of rows that could not be imported.
func (r MigrationReport) Failed() int {
	return len(r.Failures)
}

// MigrationService copies records from a legacy database into the store.
type MigrationService struct {
	source driven.LegacySource
	store  driven.ApplicationStore
}

// NewMigrationService creates a MigrationService.
func NewMigrationService(source driven.LegacySource, store driven.ApplicationStore) *MigrationService {
	return &MigrationService{source: source, store: store}
}

// Run reads every legacy record and imports them in one batch. Rows the
// store rejects are reported in Failures; the rest are kept.
func (s *MigrationService) Run(ctx context.Context) (MigrationReport, error) {
	apps, err := s.source.ReadApplications(ctx)
	if err != nil {
		return MigrationReport{}, fmt.Errorf("read legacy applications: %w", err)
	}

	report := MigrationReport{Found: len(apps)}
	if len(apps) == 0 {
		return report, nil
	}

	result, err := s.store.Import(ctx, apps)
	if err != nil {
		return report, fmt.Errorf("import legacy applications: %w", err)
	}

	report.Migrated = result.Imported
	report.Failures = result.Failures
	return report, nil
}
