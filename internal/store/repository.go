package store

import (
	"context"
	"time"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

// ProjectRepository provides access to tracked projects.
type ProjectRepository interface {
	// Upsert creates the project or overwrites its descriptive fields,
	// returning the row ID. The project_id slug is never changed.
	Upsert(ctx context.Context, p *model.Project) (uuid.UUID, error)
	FindBySlug(ctx context.Context, projectID string) (*model.Project, error)
}

// SourceRepository provides access to project data sources.
type SourceRepository interface {
	// Upsert inserts the source if absent, keyed on
	// (project_id, source_type, reference), returning the row ID.
	Upsert(ctx context.Context, s *model.Source) (uuid.UUID, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, sourceType model.SourceType) ([]model.Source, error)
}

// RawEventRepository provides access to ingested raw events.
type RawEventRepository interface {
	// Insert adds a raw event if the (source_id, unique_id) key is new.
	// A conflicting key reports inserted=false with no error.
	Insert(ctx context.Context, e *model.RawEvent) (inserted bool, err error)
	// ListUnprocessed returns raw events for the project that have no
	// normalized counterpart, oldest first, capped to limit.
	ListUnprocessed(ctx context.Context, projectID uuid.UUID, limit int) ([]model.RawEvent, error)
	// LatestTimestamp returns the newest stored event timestamp for a
	// source, or nil when the source has no events yet.
	LatestTimestamp(ctx context.Context, sourceID uuid.UUID) (*time.Time, error)
}

// NormalizedEventRepository provides access to normalized events.
type NormalizedEventRepository interface {
	// Insert adds a normalized event unless its raw event was already
	// normalized. A conflicting raw_event_id reports inserted=false.
	Insert(ctx context.Context, e *model.NormalizedEvent) (inserted bool, err error)
	// ListSince returns the project's normalized events newer than since,
	// newest first.
	ListSince(ctx context.Context, projectID uuid.UUID, since time.Time) ([]model.NormalizedEvent, error)
}

// InsightRepository provides access to generated AI insights.
type InsightRepository interface {
	Insert(ctx context.Context, i *model.AIInsight) error
	// Latest returns the most recent insight of the given type for the
	// project, or nil when none exists.
	Latest(ctx context.Context, projectID uuid.UUID, insightType model.InsightType) (*model.AIInsight, error)
}

// ScheduleStore tracks the last-run clock per (project, source type) pair.
// A pair with no clock entry is immediately due.
type ScheduleStore interface {
	LastRun(ctx context.Context, pair model.SchedulePair) (*time.Time, error)
	MarkRun(ctx context.Context, pair model.SchedulePair, at time.Time) error
}
