package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	field := e.Field()
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", field)

	case "min":
		if isText(e) {
			return fmt.Sprintf("%s: must be at least %s characters", field, param)
		}
		if isList(e) {
			return fmt.Sprintf("%s: must contain at least %s items", field, param)
		}
		return fmt.Sprintf("%s: must be at least %s", field, param)

	case "max":
		if isText(e) {
			return fmt.Sprintf("%s: must be at most %s characters", field, param)
		}
		if isList(e) {
			return fmt.Sprintf("%s: must contain at most %s items", field, param)
		}
		return fmt.Sprintf("%s: must be at most %s", field, param)

	case "gte":
		return fmt.Sprintf("%s: must be greater than or equal to %s", field, param)

	case "lte":
		return fmt.Sprintf("%s: must be less than or equal to %s", field, param)

	case "dgte":
		return fmt.Sprintf("%s: must be greater than or equal to %s", field, param)

	case "dlte":
		return fmt.Sprintf("%s: must be less than or equal to %s", field, param)

	case "pg_numeric":
		precision, scale := numericParam(param)
		return fmt.Sprintf("%s: must have at most %d integer digits and %d decimal places", field, precision-scale, scale)

	case "max_bytes":
		return fmt.Sprintf("%s: must be at most %s bytes", field, param)

	case "len":
		return fmt.Sprintf("%s: must be exactly %s characters", field, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))

	case "email":
		return fmt.Sprintf("%s: invalid email format", field)

	case "password_policy":
		return fmt.Sprintf("%s: must contain at least one digit and one uppercase letter", field)

	case "valid_phone":
		return fmt.Sprintf("%s: must be a phone number with at least 10 digits", field)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: failed validation (%s)", field, e.Tag())
	}
}

func isText(e validator.FieldError) bool {
	return e.Kind().String() == "string"
}

func isList(e validator.FieldError) bool {
	k := e.Kind().String()
	return k == "slice" || k == "array"
}
