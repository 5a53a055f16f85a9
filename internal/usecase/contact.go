package usecase

import (
	"context"
	"errors"
	"strings"

	"portfolio-web/internal/domain"
	"portfolio-web/pkg/apperror"
	"portfolio-web/pkg/email"
	"portfolio-web/pkg/security"
)

const (
	MsgMissingFields  = "Missing required fields"
	MsgSendFailed     = "Failed to send email"
	MsgNotConfigured  = "Email service is not configured"
	contactEndpointID = "/api/send"
)

type contactUsecase struct {
	sender email.Sender
	audit  *security.SecurityLogger
}

// NewContactUsecase creates a new contact usecase. audit may be nil.
func NewContactUsecase(sender email.Sender, audit *security.SecurityLogger) domain.ContactUsecase {
	return &contactUsecase{
		sender: sender,
		audit:  audit,
	}
}

// SendContactMessage validates the contact request and relays it once, without retry.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest, meta domain.ContactMeta) (*domain.SendReceipt, error) {
	if req == nil {
		return nil, apperror.BadRequest(MsgMissingFields).WithDetail(MsgMissingFields)
	}

	data := email.ContactEmailData{
		SenderName:  strings.TrimSpace(req.Name),
		SenderEmail: strings.TrimSpace(req.Email),
		Message:     strings.TrimSpace(req.Message),
	}
	if data.SenderName == "" || data.SenderEmail == "" || data.Message == "" {
		uc.audit.LogValidationFailed(ctx, meta.IP, meta.UserAgent, meta.RequestID, contactEndpointID, "blank field")
		return nil, apperror.BadRequest(MsgMissingFields).WithDetail(MsgMissingFields)
	}

	if uc.sender == nil || !uc.sender.IsConfigured() {
		return nil, apperror.ServiceUnavailable(MsgNotConfigured, email.ErrNotConfigured).WithDetail(MsgNotConfigured)
	}

	receipt, err := uc.sender.SendContactEmail(ctx, data)
	if err != nil {
		uc.audit.LogContactFailed(ctx, data.SenderEmail, meta.IP, meta.RequestID, uc.sender.Provider(), err)
		if errors.Is(err, email.ErrNotConfigured) {
			return nil, apperror.ServiceUnavailable(MsgNotConfigured, err).WithDetail(MsgNotConfigured)
		}
		return nil, apperror.Internal(err).WithDetail(MsgSendFailed)
	}

	uc.audit.LogContactSent(ctx, data.SenderEmail, meta.IP, meta.RequestID, uc.sender.Provider(), receipt.ID)

	return &domain.SendReceipt{ID: receipt.ID, Raw: receipt.Raw}, nil
}
