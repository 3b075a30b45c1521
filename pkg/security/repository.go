package security

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SecurityEventRepository stores security events in the security_events table.
type SecurityEventRepository struct {
	db *pgxpool.Pool
}

func NewSecurityEventRepository(db *pgxpool.Pool) *SecurityEventRepository {
	return &SecurityEventRepository{db: db}
}

// PersistEvent inserts event. Details are stored as JSONB.
func (r *SecurityEventRepository) PersistEvent(ctx context.Context, event SecurityEvent) error {
	query := `
		INSERT INTO security_events (
			event_type, severity, subject_type, subject_value,
			ip_address, user_agent, request_id, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var ipAddr any
	if event.IP != "" {
		ipAddr = event.IP
	}

	_, err := r.db.Exec(ctx, query,
		string(event.Event),
		string(GetSeverity(event.Event)),
		event.SubjectType,
		event.SubjectValue,
		ipAddr,
		event.UserAgent,
		event.RequestID,
		event.Details,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to persist security event: %w", err)
	}
	return nil
}
