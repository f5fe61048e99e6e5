// Package normalize drains unprocessed raw events into uniform normalized
// records. The unique raw_event_id constraint means each raw event is
// normalized at most once, so re-running over the same backlog is safe.
package normalize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/metrics"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/store"
)

// Result counts one normalization pass. Skipped counts raw events whose
// normalized row already existed.
type Result struct {
	Scanned    int
	Normalized int
	Skipped    int
}

type Stage struct {
	rawEvents  store.RawEventRepository
	normalized store.NormalizedEventRepository
	extractors *ExtractorRegistry
	batchSize  int
	logger     *slog.Logger
}

func NewStage(rawEvents store.RawEventRepository, normalized store.NormalizedEventRepository, batchSize int, logger *slog.Logger) *Stage {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Stage{
		rawEvents:  rawEvents,
		normalized: normalized,
		extractors: NewExtractorRegistry(),
		batchSize:  batchSize,
		logger:     logger.With("stage", "normalize"),
	}
}

// Run drains the project's unprocessed raw events in batches until none
// remain. Every scanned event produces a normalized row: unknown or
// malformed payloads get a minimal fallback record rather than staying in
// the queue forever.
func (s *Stage) Run(ctx context.Context, project *model.Project) (Result, error) {
	var result Result

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch, err := s.rawEvents.ListUnprocessed(ctx, project.ID, s.batchSize)
		if err != nil {
			return result, fmt.Errorf("list unprocessed for %s: %w", project.ProjectID, err)
		}
		if len(batch) == 0 {
			break
		}

		for _, raw := range batch {
			result.Scanned++

			extracted, fellBack := s.extractors.Extract(raw)
			if fellBack {
				metrics.NormalizeFallbacks.WithLabelValues(project.ProjectID, raw.EventType.String()).Inc()
				s.logger.Warn("fallback normalization",
					"project", project.ProjectID,
					"event_type", raw.EventType,
					"unique_id", raw.UniqueID,
				)
			}

			inserted, err := s.normalized.Insert(ctx, &model.NormalizedEvent{
				ProjectID:      raw.ProjectID,
				SourceID:       raw.SourceID,
				RawEventID:     raw.ID,
				EventType:      raw.EventType,
				EntityType:     extracted.EntityType,
				EntityID:       extracted.EntityID,
				Title:          extracted.Title,
				Description:    extracted.Description,
				Metadata:       extracted.Metadata,
				EventTimestamp: raw.EventTimestamp,
			})
			if err != nil {
				return result, fmt.Errorf("insert normalized event for raw %s: %w", raw.ID, err)
			}
			if inserted {
				result.Normalized++
			} else {
				result.Skipped++
			}
		}

		if len(batch) < s.batchSize {
			break
		}
	}

	metrics.NormalizeEventsScanned.WithLabelValues(project.ProjectID).Add(float64(result.Scanned))
	metrics.NormalizeEventsWritten.WithLabelValues(project.ProjectID).Add(float64(result.Normalized))

	return result, nil
}
