package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError is a single failed check on a named payload field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when a payload fails client-side checks.
// No network call is made for a payload that fails validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	seen := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		if seen[f.Message] {
			continue
		}
		seen[f.Message] = true
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// For returns the message for field, or "" if the field passed.
func (e *ValidationError) For(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// IsValidation returns true if err (or any wrapped error) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Report fields by their JSON names so messages match the wire payload.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// humanField turns "national_id" into "National Id".
func humanField(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// Validate runs the struct tag checks on a signup payload.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Message: "Invalid input"}}}
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	name := humanField(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return "Invalid email address"
	case "len":
		return fmt.Sprintf("%s must be %s digits", name, fe.Param())
	case "numeric":
		return name + " must contain only digits"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "gte":
		if fe.Param() == "0" {
			return name + " must be a non-negative number"
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	default:
		return name + " is invalid"
	}
}

// Messages for the leave request date guard.
const (
	MsgDatesRequired    = "Start and end dates are required."
	MsgInvalidDateRange = "End date must be after start date."
)

// ValidateLeaveRequest checks that both dates are set and the end date is
// strictly after the start date.
func ValidateLeaveRequest(req NewLeaveRequest) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		ve := &ValidationError{}
		if req.StartDate.IsZero() {
			ve.Fields = append(ve.Fields, FieldError{Field: "start_date", Message: MsgDatesRequired})
		}
		if req.EndDate.IsZero() {
			ve.Fields = append(ve.Fields, FieldError{Field: "end_date", Message: MsgDatesRequired})
		}
		return ve
	}
	if !req.EndDate.After(req.StartDate) {
		return &ValidationError{Fields: []FieldError{{Field: "end_date", Message: MsgInvalidDateRange}}}
	}
	return nil
}

// InvalidStatus is the error for a status a supervisor cannot set.
func InvalidStatus(s LeaveStatus) error {
	return &ValidationError{Fields: []FieldError{{
		Field:   "status",
		Message: fmt.Sprintf("Status must be %s or %s, got %q", StatusApproved, StatusRejected, s),
	}}}
}
