package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NormalizedEvent is a RawEvent mapped into a uniform structured shape.
// raw_event_id is unique: normalization of a raw event happens at most once.
type NormalizedEvent struct {
	ID             uuid.UUID       `db:"id"`
	ProjectID      uuid.UUID       `db:"project_id"`
	SourceID       uuid.UUID       `db:"source_id"`
	RawEventID     uuid.UUID       `db:"raw_event_id"`
	EventType      EventType       `db:"event_type"`
	EntityType     string          `db:"entity_type"`
	EntityID       string          `db:"entity_id"`
	Title          string          `db:"title"`
	Description    string          `db:"description"`
	Metadata       json.RawMessage `db:"metadata"`
	EventTimestamp time.Time       `db:"event_timestamp"`
	CreatedAt      time.Time       `db:"created_at"`
}
