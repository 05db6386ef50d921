package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is wrapped by every tag validation failure.
var ErrInvalidInput = errors.New("invalid input")

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report yaml names so errors match what users wrote
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// structErrors runs tag validation and returns one error per failed field
func structErrors(s any) []error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []error{fmt.Errorf("%w: %v", ErrInvalidInput, err)}
	}

	out := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		out = append(out, formatFieldError(e))
	}
	return out
}

func formatFieldError(e validator.FieldError) error {
	field := e.Field()
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required: %w", field, ErrInvalidInput)
	case "min":
		return fmt.Errorf("%s: must be at least %s: %w", field, param, ErrInvalidInput)
	case "max":
		return fmt.Errorf("%s: must not exceed %s: %w", field, param, ErrInvalidInput)
	case "oneof":
		return fmt.Errorf("%s: %v must be one of [%s]: %w", field, e.Value(), param, ErrInvalidInput)
	default:
		return fmt.Errorf("%s: validation failed (%s): %w", field, e.Tag(), ErrInvalidInput)
	}
}
