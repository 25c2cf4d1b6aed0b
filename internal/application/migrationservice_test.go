package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/jobtracker/internal/application"
	"github.com/ericfisherdev/jobtracker/internal/domain/model"
)

func TestMigrationService_Run(t *testing.T) {
	source := &fakeLegacySource{apps: []model.Application{
		{CompanyName: "Acme", JobTitle: "Engineer", Status: model.StatusApplied},
		{CompanyName: "", JobTitle: "Broken", Status: model.StatusApplied},
		{CompanyName: "Globex", JobTitle: "Analyst", Status: model.StatusGhosted},
	}}
	store := newFakeApplicationStore()
	svc := application.NewMigrationService(source, store)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Found)
	assert.Equal(t, 2, report.Migrated)
	assert.Equal(t, 1, report.Failed())
	assert.Len(t, store.apps, 2)
}

func TestMigrationService_Run_EmptySource(t *testing.T) {
	store := newFakeApplicationStore()
	svc := application.NewMigrationService(&fakeLegacySource{}, store)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Found)
	assert.Empty(t, store.imports, "no import batch for an empty source")
}

func TestMigrationService_Run_SourceError(t *testing.T) {
	sourceErr := errors.New("no such table: applications")
	svc := application.NewMigrationService(&fakeLegacySource{err: sourceErr}, newFakeApplicationStore())

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, sourceErr)
}
