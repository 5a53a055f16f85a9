package contactform

import (
	"strings"

	"portfolio-web/internal/domain"
	"portfolio-web/internal/uistate"
	"portfolio-web/pkg/validation"
)

// Field names used as keys of Result.FieldErrors.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Payload is the JSON body posted to the relay.
type Payload struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10"`
}

var validate = validation.New()

func payloadFrom(d uistate.Draft) Payload {
	return Payload{
		Name:    strings.TrimSpace(d.Name),
		Email:   strings.TrimSpace(d.Email),
		Message: strings.TrimSpace(d.Message),
	}
}

// Validate checks p and returns the localized message of every failing field.
func Validate(p Payload, msgs domain.ValidationMessages) map[string]string {
	return validation.FieldErrors(validate.Struct(p), map[string]string{
		FieldName:    msgs.NameRequired,
		FieldEmail:   msgs.EmailInvalid,
		FieldMessage: msgs.MessageRequired,
	}, msgs.NameRequired)
}
