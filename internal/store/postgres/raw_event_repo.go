package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/google/uuid"
)

type RawEventRepo struct {
	db *DB
}

func NewRawEventRepo(db *DB) *RawEventRepo {
	return &RawEventRepo{db: db}
}

// Insert adds a raw event. The (source_id, unique_id) unique constraint is
// the idempotency source of truth: a conflict is success-no-op.
func (r *RawEventRepo) Insert(ctx context.Context, e *model.RawEvent) (bool, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO raw_events (project_id, source_id, event_type, unique_id, payload, event_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (source_id, unique_id) DO NOTHING
		RETURNING id
	`, e.ProjectID, e.SourceID, e.EventType, e.UniqueID, e.Payload, e.EventTimestamp).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert raw event: %w", err)
	}
	e.ID = id
	return true, nil
}

func (r *RawEventRepo) ListUnprocessed(ctx context.Context, projectID uuid.UUID, limit int) ([]model.RawEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT re.id, re.project_id, re.source_id, re.event_type, re.unique_id, re.payload, re.event_timestamp, re.created_at
		FROM raw_events re
		LEFT JOIN normalized_events ne ON ne.raw_event_id = re.id
		WHERE re.project_id = $1 AND ne.id IS NULL
		ORDER BY re.event_timestamp ASC
		LIMIT $2
	`, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("list unprocessed raw events: %w", err)
	}
	defer rows.Close()

	var events []model.RawEvent
	for rows.Next() {
		var e model.RawEvent
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.SourceID, &e.EventType, &e.UniqueID, &e.Payload, &e.EventTimestamp, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan raw event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *RawEventRepo) LatestTimestamp(ctx context.Context, sourceID uuid.UUID) (*time.Time, error) {
	// max() over an empty set yields NULL, so scan through NullTime.
	var ts sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT max(event_timestamp) FROM raw_events WHERE source_id = $1
	`, sourceID).Scan(&ts)
	if err != nil {
		return nil, fmt.Errorf("latest raw event timestamp: %w", err)
	}
	if !ts.Valid {
		return nil, nil
	}
	return &ts.Time, nil
}
