package email

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/resend/resend-go/v2"
)

type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendService sends emails through the Resend HTTP API
type ResendService struct {
	emails     resendEmails
	configured bool
	fromEmail  string
	toEmail    string
}

func NewResendService(apiKey, from, to string) *ResendService {
	client := resend.NewClient(apiKey)
	return &ResendService{
		emails:     client.Emails,
		configured: apiKey != "",
		fromEmail:  from,
		toEmail:    to,
	}
}

// SendContactEmail sends a contact form email to the configured recipient
func (s *ResendService) SendContactEmail(ctx context.Context, data ContactEmailData) (*Receipt, error) {
	if !s.IsConfigured() {
		return nil, ErrNotConfigured
	}

	html, err := renderContactEmail(data)
	if err != nil {
		return nil, err
	}

	resp, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{s.toEmail},
		Subject: subjectFor(data),
		ReplyTo: data.SenderEmail,
		Html:    html,
	})
	if err != nil {
		return nil, fmt.Errorf("resend: %w", err)
	}
	if resp == nil || resp.Id == "" {
		return nil, fmt.Errorf("resend: empty response")
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("resend: encode response: %w", err)
	}
	return &Receipt{ID: resp.Id, Raw: raw}, nil
}

func (s *ResendService) IsConfigured() bool {
	return s.configured && s.fromEmail != "" && s.toEmail != ""
}

func (s *ResendService) Provider() string {
	return "resend"
}
