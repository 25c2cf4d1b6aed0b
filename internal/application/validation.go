package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
)

// FieldError is one rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports every field of a RecordInput that failed
// validation. Handlers render Fields next to the form inputs.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid application: " + strings.Join(msgs, "; ")
}

// Message returns the message recorded for field, or "".
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// fieldLabels maps form field names to the labels used in messages.
var fieldLabels = map[string]string{
	"company_name": "company name",
	"job_title":    "job title",
	"status":       "status",
	"job_match":    "job match",
}

// newValidator returns a validator with the tags RecordInput and
// strictRecord use.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return model.Status(fl.Field().String()).IsKnown()
	})
	return v
}

// toValidationError converts validator output into a *ValidationError.
// FieldError.Field is the form field name. Errors that are not validator.ValidationErrors are returned unchanged.
func toValidationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = strings.ToLower(fe.Field())
	}

	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "status":
		return fmt.Sprintf("%s %q is not a known status", label, fe.Value())
	case "number":
		return label + " must be a whole number"
	case "min", "max":
		return fmt.Sprintf("%s must be between %d and %d", label, model.MinJobMatch, model.MaxJobMatch)
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, fe.Tag())
	}
}
