package domain

import (
	"context"
	"encoding/json"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,not_blank,single_line"`
	Email   string `json:"email" binding:"required,not_blank,single_line"`
	Message string `json:"message" binding:"required,not_blank"`
}

// SendReceipt is the email provider's confirmation, passed back to the caller unchanged.
type SendReceipt struct {
	ID  string          `json:"id"`
	Raw json.RawMessage `json:"-"`
}

// MarshalJSON prefers the provider's own payload when it is available.
func (r SendReceipt) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	type plain SendReceipt
	return json.Marshal(plain(r))
}

// ContactMeta describes where a submission came from, for audit logging.
type ContactMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates and relays a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest, meta ContactMeta) (*SendReceipt, error)
}
