// Package validation checks use case inputs with validator/v10 and converts
// failures into domain validation errors.
package validation

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	domainerrors "journal/internal/domain/errors"
	"journal/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use the "name" tag in messages, falling back to the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("name"); name != "" {
			return name
		}

		return fld.Name
	})

	// notblank rejects strings made only of whitespace.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// maxrunes bounds a string by characters rather than bytes.
	_ = v.RegisterValidation("maxrunes", func(fl validator.FieldLevel) bool {
		var limit int
		if _, err := fmt.Sscanf(fl.Param(), "%d", &limit); err != nil {
			return false
		}

		return utf8.RuneCountInString(fl.Field().String()) <= limit
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns ErrValidationFailed with one detail
// per failing field.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}

	return nil
}

// Var validates a single value against tag, reporting failures under name.
func (v *Validator) Var(name string, value any, tag string) error {
	if err := v.v.Var(value, tag); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return Failed(name + " " + friendlyMessage(validationErrs[0]))
		}

		return err
	}

	return nil
}

// Failed builds a validation error carrying details.
func Failed(details string) error {
	return domainerrors.ErrValidationFailed.WithDetails(details)
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, e.Field()+" "+friendlyMessage(e))
	}
	slices.Sort(messages)

	return Failed(strings.Join(messages, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", e.Param())
		}

		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", e.Param())
		}

		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "maxrunes":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "unique":
		return "must not contain duplicates"
	case "nefield":
		return "must differ from " + e.Param()
	case "excluded_with", "excludedfield":
		return "must not repeat " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "ltefield":
		return "must not be after " + e.Param()
	default:
		return "is invalid"
	}
}
