package model

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

// WeekdayNames are the weekday keys used by DaySchedule.Day, Monday first.
var WeekdayNames = [7]string{"Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag", "Sonntag"}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := RegisterValidations(validate); err != nil {
		panic(err)
	}
}

// RegisterValidations adds the custom tags used by the model structs
// (hhmm, weekday, theme) to v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := ParseClock(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("register hhmm: %w", err)
	}
	if err := v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return slices.Contains(WeekdayNames[:], fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register weekday: %w", err)
	}
	if err := v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || slices.Contains(Themes, s)
	}); err != nil {
		return fmt.Errorf("register theme: %w", err)
	}
	return nil
}

// Validate checks the invariants the selector relies on but never re-checks:
// well-formed "HH:mm" strings, seven lunch images and unique ids.
func Validate(d *AppData) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("app data validation failed: %w", err)
	}
	return nil
}

// ValidateStruct runs the model validator against any value, e.g. a single
// resident or event submitted through the admin API.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}
