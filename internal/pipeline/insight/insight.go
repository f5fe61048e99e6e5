// Package insight generates periodic AI summaries from a project's
// normalized events. A cooldown on the latest stored insight keeps the stage
// from burning summarizer quota on every pipeline pass.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/metrics"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/store"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/summarizer"
)

// maxEventsPerGroup bounds how many event titles one entity-type group
// contributes to the prompt text.
const maxEventsPerGroup = 20

const (
	ReasonCooldown = "cooldown"
	ReasonNoEvents = "no_events"
)

// Result reports one insight pass. Generated=false with an empty Err means
// the pass was legitimately skipped; Reason says why.
type Result struct {
	Generated  bool
	Reason     string
	EventCount int
	Languages  []string
}

type Config struct {
	Languages []string
	Lookback  time.Duration
	Cooldown  time.Duration
	MaxEvents int
	Force     bool
}

type Stage struct {
	normalized store.NormalizedEventRepository
	insights   store.InsightRepository
	summarize  summarizer.Summarizer
	cfg        Config
	logger     *slog.Logger
	nowFn      func() time.Time
}

func NewStage(normalized store.NormalizedEventRepository, insights store.InsightRepository, s summarizer.Summarizer, cfg Config, logger *slog.Logger) *Stage {
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"en"}
	}
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = 200
	}
	return &Stage{
		normalized: normalized,
		insights:   insights,
		summarize:  s,
		cfg:        cfg,
		logger:     logger.With("stage", "insight"),
		nowFn:      time.Now,
	}
}

// Run generates and persists at most one insight. Nothing is written unless
// every configured language summarized successfully.
func (s *Stage) Run(ctx context.Context, project *model.Project) (Result, error) {
	now := s.nowFn().UTC()

	if !s.cfg.Force {
		latest, err := s.insights.Latest(ctx, project.ID, model.InsightTypeSummary7d)
		if err != nil {
			return Result{}, fmt.Errorf("latest insight for %s: %w", project.ProjectID, err)
		}
		if latest != nil && now.Sub(latest.GeneratedAt) < s.cfg.Cooldown {
			metrics.InsightsSkippedCooldown.WithLabelValues(project.ProjectID).Inc()
			s.logger.Debug("insight on cooldown",
				"project", project.ProjectID,
				"last_generated", latest.GeneratedAt,
			)
			return Result{Reason: ReasonCooldown}, nil
		}
	}

	since := now.Add(-s.cfg.Lookback)
	events, err := s.normalized.ListSince(ctx, project.ID, since)
	if err != nil {
		return Result{}, fmt.Errorf("list events for %s: %w", project.ProjectID, err)
	}
	if len(events) == 0 {
		s.logger.Debug("no events in window", "project", project.ProjectID)
		return Result{Reason: ReasonNoEvents}, nil
	}
	if len(events) > s.cfg.MaxEvents {
		events = events[:s.cfg.MaxEvents]
	}

	eventsText := formatEvents(events)

	var primary summarizer.Result
	translations := make(map[string]string)
	for i, lang := range s.cfg.Languages {
		start := time.Now()
		res, err := s.summarize.Summarize(ctx, summarizer.Request{
			ProjectID:  project.ProjectID,
			Language:   lang,
			EventsText: eventsText,
			EventCount: len(events),
		})
		metrics.SummarizerLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.SummarizerCalls.WithLabelValues(lang, "error").Inc()
			metrics.InsightErrors.WithLabelValues(project.ProjectID).Inc()
			return Result{}, fmt.Errorf("summarize %s in %s: %w", project.ProjectID, lang, err)
		}
		metrics.SummarizerCalls.WithLabelValues(lang, "success").Inc()

		if i == 0 {
			primary = res
		} else {
			translations[lang] = res.Content
		}
	}

	metadata, err := json.Marshal(map[string]any{
		"days_analyzed": int(s.cfg.Lookback.Hours() / 24),
		"event_count":   len(events),
		"generated_at":  now.Format(time.RFC3339),
	})
	if err != nil {
		return Result{}, err
	}

	if err := s.insights.Insert(ctx, &model.AIInsight{
		ProjectID:      project.ID,
		InsightType:    model.InsightTypeSummary7d,
		Title:          primary.Title,
		Content:        primary.Content,
		Confidence:     primary.Confidence,
		SourceEventIDs: sourceEventIDs(events),
		Translations:   translations,
		Metadata:       metadata,
		GeneratedAt:    now,
	}); err != nil {
		return Result{}, fmt.Errorf("insert insight for %s: %w", project.ProjectID, err)
	}

	metrics.InsightsGenerated.WithLabelValues(project.ProjectID).Inc()
	s.logger.Info("insight generated",
		"project", project.ProjectID,
		"events", len(events),
		"languages", len(s.cfg.Languages),
	)

	return Result{Generated: true, EventCount: len(events), Languages: s.cfg.Languages}, nil
}

// formatEvents renders the prompt listing: events grouped by entity type,
// each group capped, groups in deterministic order.
func formatEvents(events []model.NormalizedEvent) string {
	groups := make(map[string][]model.NormalizedEvent)
	for _, e := range events {
		groups[e.EntityType] = append(groups[e.EntityType], e)
	}

	types := make([]string, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	sort.Strings(types)

	var b strings.Builder
	for _, t := range types {
		group := groups[t]
		fmt.Fprintf(&b, "### %s (%d events)\n", titleCase(t), len(group))
		for i, e := range group {
			if i == maxEventsPerGroup {
				fmt.Fprintf(&b, "... and %d more\n", len(group)-maxEventsPerGroup)
				break
			}
			fmt.Fprintf(&b, "- [%s] %s\n", e.EventTimestamp.Format("2006-01-02"), e.Title)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sourceEventIDs(events []model.NormalizedEvent) []uuid.UUID {
	n := len(events)
	if n > model.MaxInsightSourceEvents {
		n = model.MaxInsightSourceEvents
	}
	ids := make([]uuid.UUID, 0, n)
	for _, e := range events[:n] {
		ids = append(ids, e.ID)
	}
	return ids
}
