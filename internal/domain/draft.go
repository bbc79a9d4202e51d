package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EventDraft is the allow-listed, typed shape of an event creation request. Only these
// fields can ever reach the store; slug, id and timestamps are derived server-side.
type EventDraft struct {
	Title       string   `form:"title" validate:"required"`
	Description string   `form:"description" validate:"required"`
	Overview    string   `form:"overview" validate:"required"`
	Image       string   `form:"image" validate:"required"`
	Venue       string   `form:"venue" validate:"required"`
	Location    string   `form:"location" validate:"required"`
	Date        string   `form:"date" validate:"required"`
	Time        string   `form:"time" validate:"required"`
	Mode        string   `form:"mode" validate:"required,oneof=online offline hybrid"`
	Audience    string   `form:"audience" validate:"required"`
	Agenda      []string `form:"agenda" validate:"required,min=1"`
	Organizer   string   `form:"organizer" validate:"required"`
	Tags        []string `form:"tags" validate:"required,min=1"`
}

var draftValidator = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// Validate checks, in order, that every field is present, that mode is one of Modes
// and that agenda and tags are non-empty. The first failing step is reported as a
// *ValidationError.
func (d *EventDraft) Validate() error {
	err := draftValidator.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var missing []string
	var badMode bool
	var empty []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "oneof":
			badMode = true
		case "min":
			empty = append(empty, fe.Field())
		}
	}
	if len(missing) > 0 {
		return NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	if badMode {
		return NewValidationError("Mode must be one of: " + strings.Join(Modes, ", "))
	}
	if len(empty) > 0 {
		return NewValidationError(sequenceLabel(empty[0]) + " must be a non-empty array")
	}
	return NewValidationError(err.Error())
}

func sequenceLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
