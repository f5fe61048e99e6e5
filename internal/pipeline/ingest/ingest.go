// Package ingest pulls candidate events from source adapters and stores them
// as raw events. The unique (source_id, unique_id) constraint makes every
// pass idempotent.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/metrics"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/retry"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/source"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/store"
)

// ErrNoAdapter reports a configured source type with no registered adapter.
// The caller treats it as a skip, not a failure.
var ErrNoAdapter = errors.New("no adapter registered for source type")

// SourceResult is the outcome for one source reference. Err is set when the
// adapter failed; counts still reflect whatever was stored before the error.
type SourceResult struct {
	Reference        string
	Fetched          int
	Inserted         int
	SkippedDuplicate int
	Err              error
}

// Result aggregates one ingestion pass over all of a project's sources of one
// type. Failed counts sources whose adapter errored; the other sources'
// events are stored regardless.
type Result struct {
	Fetched          int
	Inserted         int
	SkippedDuplicate int
	Failed           int
	Sources          []SourceResult
}

type Stage struct {
	adapters  *source.Registry
	sources   store.SourceRepository
	rawEvents store.RawEventRepository
	logger    *slog.Logger
}

func NewStage(adapters *source.Registry, sources store.SourceRepository, rawEvents store.RawEventRepository, logger *slog.Logger) *Stage {
	return &Stage{
		adapters:  adapters,
		sources:   sources,
		rawEvents: rawEvents,
		logger:    logger.With("stage", "ingest"),
	}
}

// Run ingests all sources of the given type for one project. A failing
// source never blocks its siblings. Run errors only when the pass itself
// could not proceed: missing adapter, source listing failure, context
// cancellation, or every source failing.
func (s *Stage) Run(ctx context.Context, project *model.Project, sourceType model.SourceType) (Result, error) {
	adapter, ok := s.adapters.Lookup(sourceType)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNoAdapter, sourceType)
	}

	sources, err := s.sources.ListByProject(ctx, project.ID, sourceType)
	if err != nil {
		return Result{}, fmt.Errorf("list sources for %s: %w", project.ProjectID, err)
	}
	if len(sources) == 0 {
		s.logger.Debug("no sources configured", "project", project.ProjectID, "source_type", sourceType)
		return Result{}, nil
	}

	var result Result
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		sr := s.runSource(ctx, adapter, project, src)
		result.Sources = append(result.Sources, sr)
		result.Fetched += sr.Fetched
		result.Inserted += sr.Inserted
		result.SkippedDuplicate += sr.SkippedDuplicate
		if sr.Err != nil {
			result.Failed++
			metrics.IngestSourceErrors.WithLabelValues(project.ProjectID, sourceType.String()).Inc()
			s.logger.Error("source ingestion failed",
				"project", project.ProjectID,
				"source_type", sourceType,
				"reference", src.Reference,
				"error", sr.Err,
			)
		}
	}

	labels := []string{project.ProjectID, sourceType.String()}
	metrics.IngestEventsFetched.WithLabelValues(labels...).Add(float64(result.Fetched))
	metrics.IngestEventsInserted.WithLabelValues(labels...).Add(float64(result.Inserted))
	metrics.IngestDuplicatesSkipped.WithLabelValues(labels...).Add(float64(result.SkippedDuplicate))

	if result.Failed == len(sources) {
		return result, fmt.Errorf("all %d sources failed for %s/%s", len(sources), project.ProjectID, sourceType)
	}
	return result, nil
}

func (s *Stage) runSource(ctx context.Context, adapter source.Adapter, project *model.Project, src model.Source) SourceResult {
	sr := SourceResult{Reference: src.Reference}

	since, err := s.rawEvents.LatestTimestamp(ctx, src.ID)
	if err != nil {
		sr.Err = fmt.Errorf("latest timestamp for %s: %w", src.Reference, err)
		return sr
	}

	start := time.Now()
	candidates, fetchErr := adapter.Fetch(ctx, src.Reference, since)
	metrics.AdapterFetchLatency.WithLabelValues(src.SourceType.String()).Observe(time.Since(start).Seconds())
	if fetchErr != nil {
		decision := retry.Classify(fetchErr)
		metrics.AdapterFetchErrors.WithLabelValues(src.SourceType.String(), string(decision.Class)).Inc()
		// Partial results are still worth storing.
		if len(candidates) == 0 {
			sr.Err = fetchErr
			return sr
		}
	}
	sr.Fetched = len(candidates)

	for _, c := range candidates {
		inserted, err := s.rawEvents.Insert(ctx, &model.RawEvent{
			ProjectID:      project.ID,
			SourceID:       src.ID,
			EventType:      c.EventType,
			UniqueID:       c.UniqueID,
			Payload:        c.Payload,
			EventTimestamp: c.Timestamp,
		})
		if err != nil {
			sr.Err = fmt.Errorf("insert raw event %s: %w", c.UniqueID, err)
			return sr
		}
		if inserted {
			sr.Inserted++
		} else {
			sr.SkippedDuplicate++
		}
	}

	sr.Err = fetchErr
	return sr
}
