// Package scheduler decides when each (project, source type) pair runs and
// drives the pipeline runner. Every pair keeps its own clock: one slow or
// broken project never delays another project's cadence.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/metrics"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/store"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/tracing"
)

// ProjectRunner runs one full pipeline pass for one pair.
type ProjectRunner interface {
	RunProject(ctx context.Context, project *model.Project, sourceType model.SourceType) pipeline.ProjectReport
}

// Intervals maps each source type to its update cadence.
type Intervals map[model.SourceType]time.Duration

type Config struct {
	Intervals     Intervals
	CheckInterval time.Duration
	ProjectDelay  time.Duration
}

// PairReport is the scheduling outcome for one due pair in one tick.
type PairReport struct {
	Pair   model.SchedulePair
	State  model.PairState
	Report pipeline.ProjectReport
	Err    error
}

// TickReport summarizes one scheduler pass.
type TickReport struct {
	At      time.Time
	Checked int
	Due     int
	Reports []PairReport
}

type Scheduler struct {
	pairs    []model.SchedulePair
	projects store.ProjectRepository
	clock    store.ScheduleStore
	runner   ProjectRunner
	cfg      Config
	logger   *slog.Logger

	nowFn   func() time.Time
	sleepFn func(time.Duration)
}

func New(pairs []model.SchedulePair, projects store.ProjectRepository, clock store.ScheduleStore, runner ProjectRunner, cfg Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		pairs:    pairs,
		projects: projects,
		clock:    clock,
		runner:   runner,
		cfg:      cfg,
		logger:   logger.With("component", "scheduler"),
		nowFn:    time.Now,
		sleepFn:  time.Sleep,
	}
}

// duePairs returns the pairs whose interval has elapsed since their last run.
// A pair with no recorded run is immediately due. Pairs whose source type has
// no configured interval are never due.
func (s *Scheduler) duePairs(ctx context.Context, now time.Time) ([]model.SchedulePair, error) {
	var due []model.SchedulePair
	for _, pair := range s.pairs {
		interval, ok := s.cfg.Intervals[pair.SourceType]
		if !ok {
			s.logger.Warn("no interval configured for source type, pair never scheduled",
				"pair", pair.String())
			continue
		}

		last, err := s.clock.LastRun(ctx, pair)
		if err != nil {
			return nil, fmt.Errorf("last run for %s: %w", pair, err)
		}
		if last == nil || now.Sub(*last) >= interval {
			due = append(due, pair)
		}
	}
	return due, nil
}

// RunTick computes the due set and runs each due pair once. The clock is
// stamped for every attempted pair whether it succeeded or failed, so a
// permanently broken pair retries on its normal cadence instead of every
// tick.
func (s *Scheduler) RunTick(ctx context.Context) (TickReport, error) {
	start := time.Now()
	now := s.nowFn().UTC()
	report := TickReport{At: now, Checked: len(s.pairs)}

	ctx, span := tracing.Tracer("scheduler").Start(ctx, "scheduler.tick")
	defer span.End()

	metrics.SchedulerTicksTotal.Inc()

	due, err := s.duePairs(ctx, now)
	if err != nil {
		return report, err
	}
	report.Due = len(due)
	metrics.SchedulerDuePairs.Set(float64(len(due)))

	if len(due) > 0 {
		s.logger.Info("tick", "checked", len(s.pairs), "due", len(due))
	}

	var lastProject string
	for _, pair := range due {
		if lastProject != "" && lastProject != pair.ProjectID && s.cfg.ProjectDelay > 0 {
			s.sleepFn(s.cfg.ProjectDelay)
		}
		lastProject = pair.ProjectID

		report.Reports = append(report.Reports, s.runPair(ctx, pair, now))
	}

	metrics.SchedulerTickLatency.Observe(time.Since(start).Seconds())
	return report, nil
}

// runPair executes one pair and stamps its clock. Pair failures are isolated:
// they are recorded in the report, never propagated.
func (s *Scheduler) runPair(ctx context.Context, pair model.SchedulePair, now time.Time) PairReport {
	pr := PairReport{Pair: pair, State: model.PairStateRunning}

	project, err := s.projects.FindBySlug(ctx, pair.ProjectID)
	switch {
	case err != nil:
		pr.State = model.PairStateFailed
		pr.Err = fmt.Errorf("resolve project %s: %w", pair.ProjectID, err)
		s.logger.Error("pair failed before running", "pair", pair.String(), "error", pr.Err)
	case project == nil:
		// Scheduled pair whose project row was never synced. Failing the
		// pair keeps it on its cadence instead of crashing the tick.
		pr.State = model.PairStateFailed
		pr.Err = fmt.Errorf("project %s not found", pair.ProjectID)
		s.logger.Error("pair failed before running", "pair", pair.String(), "error", pr.Err)
	default:
		pr.Report = s.runner.RunProject(ctx, project, pair.SourceType)
		if pr.Report.Failed() {
			pr.State = model.PairStateFailed
		} else {
			pr.State = model.PairStateSucceeded
		}
	}

	metrics.SchedulerPairRuns.WithLabelValues(pair.ProjectID, pair.SourceType.String(), string(pr.State)).Inc()

	// Stamp regardless of outcome.
	if err := s.clock.MarkRun(ctx, pair, now); err != nil {
		s.logger.Error("failed to stamp schedule clock", "pair", pair.String(), "error", err)
		if pr.Err == nil {
			pr.Err = fmt.Errorf("mark run for %s: %w", pair, err)
		}
	}

	return pr
}

// RunOnce performs a single pass over the due set and returns.
func (s *Scheduler) RunOnce(ctx context.Context) (TickReport, error) {
	return s.RunTick(ctx)
}

// RunContinuous ticks every CheckInterval until ctx is cancelled. An
// in-flight tick always completes: cancellation is honored between ticks, so
// partially ingested work is never abandoned mid-pair.
func (s *Scheduler) RunContinuous(ctx context.Context) error {
	s.logger.Info("continuous mode started",
		"check_interval", s.cfg.CheckInterval,
		"pairs", len(s.pairs),
	)

	ticker := time.NewTicker(s.cfg.CheckInterval)
	defer ticker.Stop()

	// First pass immediately rather than waiting a full interval.
	if _, err := s.RunTick(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("tick failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("continuous mode stopping")
			return nil
		case <-ticker.C:
			if _, err := s.RunTick(context.WithoutCancel(ctx)); err != nil {
				s.logger.Error("tick failed", "error", err)
			}
		}
	}
}
