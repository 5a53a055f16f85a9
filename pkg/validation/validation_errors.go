package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps every failing field to its message from messages, keyed by
// the field name the validator reports. Fields without a message get fallback.
func FieldErrors(err error, messages map[string]string, fallback string) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		if _, seen := out[e.Field()]; seen {
			continue
		}
		msg, ok := messages[e.Field()]
		if !ok {
			msg = fallback
		}
		out[e.Field()] = msg
	}
	return out
}

// FormatValidationErrors converts validator.ValidationErrors to short English
// messages, for logs and CLI output.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s: required", field)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: at least %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s: at least %s", field, e.Param())
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: at most %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s: at most %s", field, e.Param())
	case "email":
		return fmt.Sprintf("%s: invalid email address", field)
	case "single_line":
		return fmt.Sprintf("%s: must not contain line breaks", field)
	default:
		return fmt.Sprintf("%s: failed %s", field, e.Tag())
	}
}
