package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-web/pkg/security"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createSecurityEventsTable = `
	CREATE TABLE IF NOT EXISTS contact_security_events (
		id            BIGSERIAL PRIMARY KEY,
		event_type    TEXT        NOT NULL,
		service       TEXT        NOT NULL,
		environment   TEXT        NOT NULL,
		level         TEXT        NOT NULL,
		severity      TEXT        NOT NULL DEFAULT 'MEDIUM',
		subject_type  TEXT,
		subject_value TEXT,
		ip_address    TEXT,
		user_agent    TEXT,
		request_id    TEXT,
		details       JSONB,
		created_at    TIMESTAMPTZ NOT NULL
	)
`

// SecurityEventRepository stores contact relay audit events
type SecurityEventRepository struct {
	db *pgxpool.Pool
}

func NewSecurityEventRepository(db *pgxpool.Pool) *SecurityEventRepository {
	return &SecurityEventRepository{db: db}
}

// EnsureSchema creates the events table when it does not exist yet.
func (r *SecurityEventRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createSecurityEventsTable); err != nil {
		return fmt.Errorf("failed to create contact_security_events: %w", err)
	}
	return nil
}

// Persist inserts one event. It satisfies security.PersistFunc.
func (r *SecurityEventRepository) Persist(ctx context.Context, event security.SecurityEvent) error {
	query := `
		INSERT INTO contact_security_events (
			event_type, service, environment, level, severity,
			subject_type, subject_value, ip_address, user_agent,
			request_id, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	details, err := eventDetails(event)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query,
		string(event.Event),
		event.Service,
		event.Environment,
		event.Level,
		string(event.Severity),
		nullable(event.SubjectType),
		nullable(event.SubjectValue),
		nullable(event.IP),
		nullable(event.UserAgent),
		nullable(event.RequestID),
		details,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to persist security event: %w", err)
	}
	return nil
}

func eventDetails(event security.SecurityEvent) ([]byte, error) {
	if len(event.Details) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(event.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event details: %w", err)
	}
	return b, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
