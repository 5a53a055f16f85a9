package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"portfolio-web/config"
)

// ErrNotConfigured is returned when no provider credentials are set.
var ErrNotConfigured = errors.New("email service is not configured")

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Message     string
}

// Receipt is the provider's confirmation of an accepted message.
type Receipt struct {
	ID string
	// Raw is the provider response body, when the provider returns one.
	Raw json.RawMessage
}

// Sender delivers contact form emails through one provider.
type Sender interface {
	SendContactEmail(ctx context.Context, data ContactEmailData) (*Receipt, error)
	IsConfigured() bool
	Provider() string
}

// NewFromConfig picks Resend when an API key is present, SMTP otherwise.
// Addresses from the environment win over the site profile.
func NewFromConfig(cfg *config.Config, site *config.Site) Sender {
	from, to := cfg.ContactEmailFrom, cfg.ContactEmailTo
	if site != nil {
		if from == "" {
			from = site.Contact.From
		}
		if to == "" {
			to = site.Contact.To
		}
	}
	if cfg.ResendAPIKey != "" {
		return NewResendService(cfg.ResendAPIKey, from, to)
	}
	return NewSMTPService(SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     from,
		To:       to,
	})
}

// contactEmailTemplate is the HTML template for contact form emails
const contactEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New message from {{.SenderName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #222; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: #f6f6f6; padding: 15px; border-left: 4px solid #111; margin-top: 10px; white-space: pre-wrap; }
        .footer { padding-top: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <p>You have a new message from <strong>{{.SenderName}}</strong> ({{.SenderEmail}}):</p>
        <div class="label">Message:</div>
        <div class="message-box">{{.Message}}</div>
        <div class="footer">
            <p>Sent from the portfolio contact form. Reply to this email to answer {{.SenderName}}.</p>
        </div>
    </div>
</body>
</html>`

var contactTmpl = template.Must(template.New("contact").Parse(contactEmailTemplate))

func subjectFor(data ContactEmailData) string {
	return fmt.Sprintf("New message from %s", data.SenderName)
}

func renderContactEmail(data ContactEmailData) (string, error) {
	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}
