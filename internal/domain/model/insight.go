package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MaxInsightSourceEvents bounds the contributing event ids stored per insight.
const MaxInsightSourceEvents = 50

type InsightType string

const (
	InsightTypeSummary7d InsightType = "summary_7d"
)

// AIInsight is a generated natural-language summary derived from normalized
// events. Rows accumulate over time and are never overwritten; newer rows
// supersede older ones by GeneratedAt.
type AIInsight struct {
	ID             uuid.UUID         `db:"id"`
	ProjectID      uuid.UUID         `db:"project_id"`
	InsightType    InsightType       `db:"insight_type"`
	Title          string            `db:"title"`
	Content        string            `db:"content"`
	Confidence     float64           `db:"confidence"`
	SourceEventIDs []uuid.UUID       `db:"source_event_ids"`
	Translations   map[string]string `db:"content_translations"`
	Metadata       json.RawMessage   `db:"metadata"`
	GeneratedAt    time.Time         `db:"generated_at"`
	CreatedAt      time.Time         `db:"created_at"`
}
