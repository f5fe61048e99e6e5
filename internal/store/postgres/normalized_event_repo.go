package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/google/uuid"
)

type NormalizedEventRepo struct {
	db *DB
}

func NewNormalizedEventRepo(db *DB) *NormalizedEventRepo {
	return &NormalizedEventRepo{db: db}
}

// Insert adds a normalized event. The raw_event_id unique constraint
// guarantees at-most-once normalization; a conflict is success-no-op.
func (r *NormalizedEventRepo) Insert(ctx context.Context, e *model.NormalizedEvent) (bool, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO normalized_events
			(project_id, source_id, raw_event_id, event_type, entity_type, entity_id,
			 title, description, metadata, event_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (raw_event_id) DO NOTHING
		RETURNING id
	`, e.ProjectID, e.SourceID, e.RawEventID, e.EventType, e.EntityType, e.EntityID,
		e.Title, e.Description, e.Metadata, e.EventTimestamp).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert normalized event: %w", err)
	}
	e.ID = id
	return true, nil
}

func (r *NormalizedEventRepo) ListSince(ctx context.Context, projectID uuid.UUID, since time.Time) ([]model.NormalizedEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, source_id, raw_event_id, event_type, entity_type, entity_id,
		       title, description, metadata, event_timestamp, created_at
		FROM normalized_events
		WHERE project_id = $1 AND event_timestamp >= $2
		ORDER BY event_timestamp DESC
	`, projectID, since)
	if err != nil {
		return nil, fmt.Errorf("list normalized events: %w", err)
	}
	defer rows.Close()

	var events []model.NormalizedEvent
	for rows.Next() {
		var e model.NormalizedEvent
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.SourceID, &e.RawEventID, &e.EventType,
			&e.EntityType, &e.EntityID, &e.Title, &e.Description, &e.Metadata,
			&e.EventTimestamp, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan normalized event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
