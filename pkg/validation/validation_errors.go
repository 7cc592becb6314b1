package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors converts validator.ValidationErrors to field errors
// keyed by the JSON name of each field.
func FormatValidationErrors(err error) []apperror.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []apperror.FieldError{{Field: "", Reason: err.Error()}}
	}

	fields := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, apperror.FieldError{
			Field:  e.Field(),
			Reason: formatSingleError(e),
		})
	}
	return fields
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	param := e.Param()
	isString := e.Kind() == reflect.String

	switch e.Tag() {
	case "required":
		return "is required"

	case "notblank":
		return "must not be blank"

	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return fmt.Sprintf("must be at least %s", param)

	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return fmt.Sprintf("must be at most %s", param)

	case "len":
		return fmt.Sprintf("must be exactly %s characters", param)

	case "gt":
		return fmt.Sprintf("must be greater than %s", param)

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)

	case "numeric":
		return "must contain digits only"

	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(param), ", "))

	case "email":
		return "must be a valid email address"

	case "url":
		return "must be a valid URL"

	case "gtefield":
		return fmt.Sprintf("must be greater than or equal to %s", formatCamelCase(param))

	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}

// formatCamelCase converts CamelCase to snake_case to match JSON names
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
