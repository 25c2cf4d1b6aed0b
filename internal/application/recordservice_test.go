package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/jobtracker/internal/application"
	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
	"github.com/ericfisherdev/jobtracker/internal/domain/search"
)

func TestRecordService_Create_Defaults(t *testing.T) {
	store := newFakeApplicationStore()
	svc := application.NewRecordService(store, newStubClock(), false)

	id, err := svc.Create(context.Background(), application.RecordInput{
		CompanyName: "Acme",
		JobTitle:    "Engineer",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApplied, got.Status)
	assert.Equal(t, "14/10/2026", got.DateApplied)
	assert.Equal(t, "14/10/2026 09:30:15", got.LastUpdated)
	assert.Nil(t, got.JobMatch)
}

func TestRecordService_Create_KeepsSuppliedValues(t *testing.T) {
	store := newFakeApplicationStore()
	svc := application.NewRecordService(store, newStubClock(), false)

	id, err := svc.Create(context.Background(), application.RecordInput{
		CompanyName:  "Acme",
		JobTitle:     "Engineer",
		DateApplied:  "01/10/2026",
		Status:       "On Hold",
		JobMatch:     "9",
		ContactEmail: "not-an-email",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "01/10/2026", got.DateApplied)
	assert.Equal(t, model.Status("On Hold"), got.Status, "permissive mode stores unknown statuses")
	require.NotNil(t, got.JobMatch)
	assert.Equal(t, 9, *got.JobMatch)
	assert.Equal(t, "not-an-email", got.ContactEmail)
}

func TestRecordService_Create_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		input  application.RecordInput
		fields []string
	}{
		{
			name:   "missing company",
			input:  application.RecordInput{JobTitle: "Engineer"},
			fields: []string{"company_name"},
		},
		{
			name:   "blank title",
			input:  application.RecordInput{CompanyName: "Acme", JobTitle: "   "},
			fields: []string{"job_title"},
		},
		{
			name:   "both missing",
			input:  application.RecordInput{},
			fields: []string{"company_name", "job_title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeApplicationStore()
			svc := application.NewRecordService(store, newStubClock(), false)

			_, err := svc.Create(context.Background(), tt.input)
			require.Error(t, err)

			var ve *application.ValidationError
			require.ErrorAs(t, err, &ve)
			for _, field := range tt.fields {
				assert.Contains(t, ve.Message(field), "is required")
			}
			assert.Len(t, ve.Fields, len(tt.fields))
			assert.Empty(t, store.apps, "nothing is stored on validation failure")
		})
	}
}

func TestRecordService_StrictMode(t *testing.T) {
	tests := []struct {
		name    string
		input   application.RecordInput
		field   string
		wantErr bool
	}{
		{name: "known status", input: application.RecordInput{Status: "Rejected"}},
		{name: "empty status defaults", input: application.RecordInput{}},
		{name: "unknown status", input: application.RecordInput{Status: "On Hold"}, field: "status", wantErr: true},
		{name: "lowercase status", input: application.RecordInput{Status: "applied"}, field: "status", wantErr: true},
		{name: "rating in range", input: application.RecordInput{JobMatch: "5"}},
		{name: "rating too high", input: application.RecordInput{JobMatch: "6"}, field: "job_match", wantErr: true},
		{name: "rating zero", input: application.RecordInput{JobMatch: "0"}, field: "job_match", wantErr: true},
		{name: "rating not a number", input: application.RecordInput{JobMatch: "high"}, field: "job_match", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := application.NewRecordService(newFakeApplicationStore(), newStubClock(), true)
			in := tt.input
			in.CompanyName = "Acme"
			in.JobTitle = "Engineer"

			_, err := svc.Create(context.Background(), in)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			var ve *application.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Message(tt.field))
			assert.Len(t, ve.Fields, 1)
		})
	}
}

func TestRecordService_Update_FullReplacement(t *testing.T) {
	existing := model.Application{
		ID:          7,
		CompanyName: "Acme",
		JobTitle:    "Engineer",
		Location:    "Remote",
		DateApplied: "01/10/2026",
		Status:      model.StatusPhoneScreen,
		JobMatch:    model.IntPtr(4),
		Notes:       "keep me?",
		LastUpdated: "01/10/2026 08:00:00",
	}
	store := newFakeApplicationStore(existing)
	clock := newStubClock()
	svc := application.NewRecordService(store, clock, false)

	err := svc.Update(context.Background(), 7, application.RecordInput{
		CompanyName: "Acme",
		JobTitle:    "Staff Engineer",
		DateApplied: "01/10/2026",
		Status:      string(model.StatusFirstInterview),
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", got.JobTitle)
	assert.Equal(t, model.StatusFirstInterview, got.Status)
	assert.Equal(t, "", got.Location, "omitted optional fields become empty")
	assert.Equal(t, "", got.Notes)
	assert.Nil(t, got.JobMatch)
	assert.Equal(t, "14/10/2026 09:30:15", got.LastUpdated)
}

func TestRecordService_Update_NotFound(t *testing.T) {
	svc := application.NewRecordService(newFakeApplicationStore(), newStubClock(), false)

	err := svc.Update(context.Background(), 99, application.RecordInput{CompanyName: "Acme", JobTitle: "Engineer"})
	assert.ErrorIs(t, err, driven.ErrApplicationNotFound)
}

func TestRecordService_Delete(t *testing.T) {
	store := newFakeApplicationStore(model.Application{ID: 1, CompanyName: "Acme", JobTitle: "Engineer"})
	svc := application.NewRecordService(store, newStubClock(), false)

	require.NoError(t, svc.Delete(context.Background(), 1))

	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, driven.ErrApplicationNotFound)

	err = svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, driven.ErrApplicationNotFound)
}

func TestRecordService_Search(t *testing.T) {
	store := newFakeApplicationStore(
		model.Application{ID: 1, CompanyName: "Acme", JobTitle: "Engineer", Location: "Berlin", Status: model.StatusApplied},
		model.Application{ID: 2, CompanyName: "Globex", JobTitle: "Backend Engineer", Location: "Remote", Status: model.StatusRejected},
		model.Application{ID: 3, CompanyName: "Initech", JobTitle: "Analyst", Location: "Austin", Status: model.StatusApplied},
	)
	svc := application.NewRecordService(store, newStubClock(), false)

	apps, err := svc.Search(context.Background(), search.New("engineer", "All"))
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, int64(2), apps[0].ID, "newest first")
	assert.Equal(t, int64(1), apps[1].ID)

	apps, err = svc.Search(context.Background(), search.New("", string(model.StatusApplied)))
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, int64(3), apps[0].ID)

	apps, err = svc.Search(context.Background(), search.All())
	require.NoError(t, err)
	assert.Len(t, apps, 3)
}

func TestInputFromApplication_RoundTrip(t *testing.T) {
	app := model.Application{
		CompanyName: "Acme",
		JobTitle:    "Engineer",
		Status:      model.StatusGhosted,
		JobMatch:    model.IntPtr(3),
	}

	in := application.InputFromApplication(app)
	assert.Equal(t, "3", in.JobMatch)
	assert.Equal(t, "Ghosted", in.Status)
}

func TestParseJobMatch(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{raw: "", want: nil},
		{raw: "3", want: model.IntPtr(3)},
		{raw: "007", want: model.IntPtr(7)},
		{raw: "12", want: model.IntPtr(12)},
		{raw: "abc", want: nil},
		{raw: "-1", want: nil},
		{raw: "2.5", want: nil},
		{raw: " 3", want: nil},
		{raw: "99999999999999999999999", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, application.ParseJobMatch(tt.raw))
		})
	}
}
