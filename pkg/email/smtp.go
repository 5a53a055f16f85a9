package email

import (
	"context"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       string
}

// SMTPService handles sending emails via SMTP
type SMTPService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	sendMail  func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPService(cfg SMTPConfig) *SMTPService {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPService{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: from,
		toEmail:   cfg.To,
		sendMail:  smtp.SendMail,
	}
}

// SendContactEmail sends a contact form email to the configured recipient.
// net/smtp has no context support, so ctx is only checked before dialing.
func (s *SMTPService) SendContactEmail(ctx context.Context, data ContactEmailData) (*Receipt, error) {
	if !s.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := renderContactEmail(data)
	if err != nil {
		return nil, err
	}

	messageID := uuid.NewString()
	domainPart := s.host
	if addr, err := mail.ParseAddress(s.fromEmail); err == nil {
		if at := strings.LastIndexByte(addr.Address, '@'); at >= 0 {
			domainPart = addr.Address[at+1:]
		}
	}

	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"Date: %s\r\n"+
			"Message-ID: <%s@%s>\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		s.toEmail,
		sanitizeHeader(data.SenderEmail),
		sanitizeHeader(subjectFor(data)),
		time.Now().UTC().Format(time.RFC1123Z),
		messageID, domainPart,
		body,
	))

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	envelopeFrom := s.fromEmail
	if addr, err := mail.ParseAddress(s.fromEmail); err == nil {
		envelopeFrom = addr.Address
	}

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.sendMail(addr, auth, envelopeFrom, []string{s.toEmail}, msg); err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	return &Receipt{ID: messageID}, nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *SMTPService) IsConfigured() bool {
	return s.host != "" && s.fromEmail != "" && s.toEmail != ""
}

func (s *SMTPService) Provider() string {
	return "smtp"
}

// sanitizeHeader keeps user input from injecting extra headers
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
