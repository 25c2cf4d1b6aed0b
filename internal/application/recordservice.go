package application

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
	"github.com/ericfisherdev/jobtracker/internal/domain/search"
)

// RecordInput is the user-supplied content of an application, as submitted
// by the add and edit forms. JobMatch is the raw rating text.
type RecordInput struct {
	CompanyName   string `form:"company_name" validate:"notblank"`
	JobTitle      string `form:"job_title" validate:"notblank"`
	Location      string `form:"location"`
	DateApplied   string `form:"date_applied"`
	Status        string `form:"status"`
	SalaryRange   string `form:"salary_range"`
	JobLink       string `form:"job_link"`
	ContactPerson string `form:"contact_person"`
	ContactEmail  string `form:"contact_email"`
	JobMatch      string `form:"job_match"`
	Notes         string `form:"notes"`
}

// InputFromApplication returns the form content that reproduces app.
func InputFromApplication(app model.Application) RecordInput {
	in := RecordInput{
		CompanyName:   app.CompanyName,
		JobTitle:      app.JobTitle,
		Location:      app.Location,
		DateApplied:   app.DateApplied,
		Status:        string(app.Status),
		SalaryRange:   app.SalaryRange,
		JobLink:       app.JobLink,
		ContactPerson: app.ContactPerson,
		ContactEmail:  app.ContactEmail,
		Notes:         app.Notes,
	}
	if app.JobMatch != nil {
		in.JobMatch = strconv.Itoa(*app.JobMatch)
	}
	return in
}

// strictRecord carries the fields checked only in strict mode.
type strictRecord struct {
	Status    string `form:"status" validate:"status"`
	MatchText string `form:"job_match" validate:"omitempty,number"`
	Match     *int   `form:"job_match" validate:"omitempty,min=1,max=5"`
}

// RecordService owns the lifecycle rules for application records: required
// fields, defaults, and last-updated stamping. Storage is reached only
// through the ApplicationStore port.
type RecordService struct {
	store    driven.ApplicationStore
	clock    Clock
	validate *validator.Validate
	strict   bool
}

// NewRecordService creates a RecordService. With strict set, statuses outside
// the known vocabulary and ratings outside 1-5 are rejected instead of stored.
func NewRecordService(store driven.ApplicationStore, clock Clock, strict bool) *RecordService {
	return &RecordService{
		store:    store,
		clock:    clock,
		validate: newValidator(),
		strict:   strict,
	}
}

// Strict reports whether strict validation is enabled.
func (s *RecordService) Strict() bool {
	return s.strict
}

// Create validates in, fills defaults and stores a new record. An empty
// status becomes the default status and an empty date applied becomes today.
func (s *RecordService) Create(ctx context.Context, in RecordInput) (int64, error) {
	app, err := s.build(in)
	if err != nil {
		return 0, err
	}

	if app.DateApplied == "" {
		app.DateApplied = s.clock.Now().Format(model.DateLayout)
	}

	id, err := s.store.Create(ctx, app)
	if err != nil {
		return 0, fmt.Errorf("create application: %w", err)
	}

	return id, nil
}

// Update replaces every field of record id with in. Optional fields missing
// from in become empty. Returns driven.ErrApplicationNotFound when id does not exist.
func (s *RecordService) Update(ctx context.Context, id int64, in RecordInput) error {
	app, err := s.build(in)
	if err != nil {
		return err
	}
	app.ID = id

	if err := s.store.Update(ctx, app); err != nil {
		return fmt.Errorf("update application: %w", err)
	}

	return nil
}

// Delete removes record id permanently.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

// Get returns record id.
func (s *RecordService) Get(ctx context.Context, id int64) (*model.Application, error) {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

// Search returns the records matching c, newest first.
func (s *RecordService) Search(ctx context.Context, c search.Criteria) ([]model.Application, error) {
	apps, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return c.Filter(apps), nil
}

// build validates in and converts it to a record stamped with the current time.
func (s *RecordService) build(in RecordInput) (model.Application, error) {
	if err := s.check(in); err != nil {
		return model.Application{}, err
	}

	status := model.Status(in.Status)
	if status == "" {
		status = model.DefaultStatus
	}

	return model.Application{
		CompanyName:   in.CompanyName,
		JobTitle:      in.JobTitle,
		Location:      in.Location,
		DateApplied:   in.DateApplied,
		Status:        status,
		SalaryRange:   in.SalaryRange,
		JobLink:       in.JobLink,
		ContactPerson: in.ContactPerson,
		ContactEmail:  in.ContactEmail,
		JobMatch:      ParseJobMatch(in.JobMatch),
		Notes:         in.Notes,
		LastUpdated:   s.clock.Now().Format(model.TimestampLayout),
	}, nil
}

func (s *RecordService) check(in RecordInput) error {
	var fields []FieldError

	if err := s.validate.Struct(in); err != nil {
		converted := toValidationError(err)
		ve, ok := converted.(*ValidationError)
		if !ok {
			return fmt.Errorf("validate application: %w", err)
		}
		fields = append(fields, ve.Fields...)
	}

	if s.strict {
		status := in.Status
		if status == "" {
			status = string(model.DefaultStatus)
		}
		strict := strictRecord{Status: status, MatchText: in.JobMatch, Match: ParseJobMatch(in.JobMatch)}
		if err := s.validate.Struct(strict); err != nil {
			converted := toValidationError(err)
			ve, ok := converted.(*ValidationError)
			if !ok {
				return fmt.Errorf("validate application: %w", err)
			}
			fields = append(fields, ve.Fields...)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ParseJobMatch converts a raw rating to an integer. Only a non-empty string
// of ASCII digits parses; anything else, including values too large for an
// int, yields nil.
func ParseJobMatch(raw string) *int {
	if raw == "" {
		return nil
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return nil
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
