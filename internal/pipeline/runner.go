// Package pipeline sequences the per-project stages: ingest, normalize,
// insight. The runner is best-effort: a failed stage is recorded and the
// next stage still runs, so a GitHub outage does not stop insight generation
// from yesterday's backlog.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/alert"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/ingest"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/insight"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/normalize"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/tracing"
)

type StageStatus string

const (
	StageSuccess StageStatus = "success"
	StageSkipped StageStatus = "skipped"
	StageFailed  StageStatus = "failed"
)

// StageResult is the outcome of one stage for one project run.
type StageResult struct {
	Status StageStatus
	Err    error
	Detail string
	Counts map[string]int
}

// ProjectReport aggregates one full pipeline pass for one (project, source
// type) pair.
type ProjectReport struct {
	ProjectID  string
	SourceType model.SourceType
	Ingest     StageResult
	Normalize  StageResult
	Insight    StageResult
	Elapsed    time.Duration
}

// Failed reports whether any stage failed.
func (r ProjectReport) Failed() bool {
	return r.Ingest.Status == StageFailed ||
		r.Normalize.Status == StageFailed ||
		r.Insight.Status == StageFailed
}

// Options toggles stages off for one-shot maintenance runs.
type Options struct {
	SkipIngest   bool
	SkipInsights bool
}

type Runner struct {
	ingest    *ingest.Stage
	normalize *normalize.Stage
	insight   *insight.Stage
	alerter   alert.Alerter
	opts      Options
	logger    *slog.Logger
}

func NewRunner(ingestStage *ingest.Stage, normalizeStage *normalize.Stage, insightStage *insight.Stage, alerter alert.Alerter, opts Options, logger *slog.Logger) *Runner {
	if alerter == nil {
		alerter = &alert.NoopAlerter{}
	}
	return &Runner{
		ingest:    ingestStage,
		normalize: normalizeStage,
		insight:   insightStage,
		alerter:   alerter,
		opts:      opts,
		logger:    logger.With("component", "runner"),
	}
}

// RunProject executes the three stages for one pair. It never panics
// outward; a panic in any stage marks the report failed and is alerted.
func (r *Runner) RunProject(ctx context.Context, project *model.Project, sourceType model.SourceType) (report ProjectReport) {
	start := time.Now()
	report.SourceType = sourceType
	if project == nil {
		report.Ingest = StageResult{Status: StageFailed, Err: errors.New("nil project")}
		report.Elapsed = time.Since(start)
		return report
	}
	report.ProjectID = project.ProjectID

	ctx, span := tracing.Tracer("pipeline").Start(ctx, "runner.project")
	defer span.End()

	// Tracks which stage is in flight so a recovered panic lands on the
	// stage that raised it.
	stage := "ingest"
	defer func() {
		report.Elapsed = time.Since(start)
		if rec := recover(); rec != nil {
			err := fmt.Errorf("pipeline panic for %s in %s: %v", project.ProjectID, stage, rec)
			r.logger.Error("pipeline panicked",
				"project", project.ProjectID, "stage", stage, "panic", rec)
			failed := StageResult{Status: StageFailed, Err: err}
			switch stage {
			case "ingest":
				report.Ingest = failed
			case "normalize":
				report.Normalize = failed
			default:
				report.Insight = failed
			}
			r.sendAlert(ctx, alert.Alert{
				Type:       alert.AlertTypeProjectFailed,
				Project:    project.ProjectID,
				SourceType: sourceType.String(),
				Title:      "Pipeline panicked",
				Message:    fmt.Sprint(rec),
				Fields:     map[string]string{"stage": stage},
			})
		}
	}()

	report.Ingest = r.runIngest(ctx, project, sourceType)
	stage = "normalize"
	report.Normalize = r.runNormalize(ctx, project)
	stage = "insight"
	report.Insight = r.runInsight(ctx, project)

	return report
}

func (r *Runner) runIngest(ctx context.Context, project *model.Project, sourceType model.SourceType) StageResult {
	if r.opts.SkipIngest {
		return StageResult{Status: StageSkipped, Detail: "ingest disabled"}
	}

	ctx, span := tracing.StartStage(ctx, "ingest", project.ProjectID)
	defer span.End()

	res, err := r.ingest.Run(ctx, project, sourceType)
	counts := map[string]int{
		"fetched":    res.Fetched,
		"inserted":   res.Inserted,
		"duplicates": res.SkippedDuplicate,
		"failed":     res.Failed,
	}
	if errors.Is(err, ingest.ErrNoAdapter) {
		r.logger.Warn("source type has no adapter, skipping",
			"project", project.ProjectID, "source_type", sourceType)
		return StageResult{Status: StageSkipped, Detail: "no adapter", Counts: counts}
	}
	if err != nil {
		r.sendAlert(ctx, alert.Alert{
			Type:       alert.AlertTypeAdapterFatal,
			Project:    project.ProjectID,
			SourceType: sourceType.String(),
			Title:      "Ingestion failed",
			Message:    err.Error(),
		})
		return StageResult{Status: StageFailed, Err: err, Counts: counts}
	}
	return StageResult{Status: StageSuccess, Counts: counts}
}

func (r *Runner) runNormalize(ctx context.Context, project *model.Project) StageResult {
	ctx, span := tracing.StartStage(ctx, "normalize", project.ProjectID)
	defer span.End()

	res, err := r.normalize.Run(ctx, project)
	counts := map[string]int{
		"scanned":    res.Scanned,
		"normalized": res.Normalized,
		"skipped":    res.Skipped,
	}
	if err != nil {
		return StageResult{Status: StageFailed, Err: err, Counts: counts}
	}
	return StageResult{Status: StageSuccess, Counts: counts}
}

func (r *Runner) runInsight(ctx context.Context, project *model.Project) StageResult {
	if r.opts.SkipInsights {
		return StageResult{Status: StageSkipped, Detail: "insights disabled"}
	}

	ctx, span := tracing.StartStage(ctx, "insight", project.ProjectID)
	defer span.End()

	res, err := r.insight.Run(ctx, project)
	if err != nil {
		r.sendAlert(ctx, alert.Alert{
			Type:       alert.AlertTypeSummarizerFailed,
			Project:    project.ProjectID,
			SourceType: "",
			Title:      "Insight generation failed",
			Message:    err.Error(),
		})
		return StageResult{Status: StageFailed, Err: err}
	}
	counts := map[string]int{"events": res.EventCount}
	if !res.Generated {
		return StageResult{Status: StageSkipped, Detail: res.Reason, Counts: counts}
	}
	return StageResult{Status: StageSuccess, Counts: counts}
}

func (r *Runner) sendAlert(ctx context.Context, a alert.Alert) {
	if err := r.alerter.Send(ctx, a); err != nil {
		r.logger.Warn("alert dispatch failed", "type", a.Type, "error", err)
	}
}
