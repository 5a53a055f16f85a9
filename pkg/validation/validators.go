package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("single_line", SingleLine)
}

// UseJSONNames reports fields by their json name instead of the Go field name.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// New returns a validator with the custom rules and json field names.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	UseJSONNames(v)
	return v
}

// NotBlank rejects strings that are empty after trimming whitespace
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// SingleLine rejects CR and LF, which would let a value spill into mail headers
func SingleLine(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), "\r\n")
}
