package validation_test

import (
	"errors"
	"testing"

	"portfolio-web/pkg/validation"

	"github.com/stretchr/testify/assert"
)

type form struct {
	Name    string `json:"name" validate:"not_blank,single_line,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10"`
}

func TestFieldErrors(t *testing.T) {
	v := validation.New()

	err := v.Struct(form{Name: "   ", Email: "nope", Message: "Hello there, long enough"})
	got := validation.FieldErrors(err, map[string]string{"name": "Name is required"}, "Invalid value")

	assert.Equal(t, map[string]string{
		"name":  "Name is required",
		"email": "Invalid value",
	}, got)

	assert.Nil(t, validation.FieldErrors(nil, nil, ""))
	assert.Nil(t, validation.FieldErrors(errors.New("other"), nil, ""))
}

func TestSingleLine(t *testing.T) {
	v := validation.New()
	err := v.Struct(form{Name: "Jane\r\nBcc: x", Email: "jane@example.com", Message: "Hello there, long enough"})
	assert.Equal(t, []string{"name: must not contain line breaks"}, validation.FormatValidationErrors(err))
}

func TestFormatValidationErrors(t *testing.T) {
	v := validation.New()
	err := v.Struct(form{Name: "Jane", Email: "", Message: "short"})
	assert.ElementsMatch(t, []string{
		"email: required",
		"message: at least 10 characters",
	}, validation.FormatValidationErrors(err))
}
