package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RawEvent is an unmodified ingested record from a source. The payload keeps
// the adapter's full response. (source_id, unique_id) is unique, so
// re-ingesting the same adapter output is a no-op. Rows are immutable once
// written.
type RawEvent struct {
	ID             uuid.UUID       `db:"id"`
	ProjectID      uuid.UUID       `db:"project_id"`
	SourceID       uuid.UUID       `db:"source_id"`
	EventType      EventType       `db:"event_type"`
	UniqueID       string          `db:"unique_id"`
	Payload        json.RawMessage `db:"payload"`
	EventTimestamp time.Time       `db:"event_timestamp"`
	CreatedAt      time.Time       `db:"created_at"`
}
