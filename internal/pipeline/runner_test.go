package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/alert"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/ingest"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/insight"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/normalize"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/source"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/store/mocks"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/summarizer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingAlerter struct {
	mu     sync.Mutex
	alerts []alert.Alert
}

func (r *recordingAlerter) Send(_ context.Context, a alert.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return nil
}

type stubAdapter struct {
	candidates []source.Candidate
	err        error
	panicMsg   string
}

func (s *stubAdapter) Type() model.SourceType { return model.SourceTypeGitHub }

func (s *stubAdapter) Fetch(context.Context, string, *time.Time) ([]source.Candidate, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.candidates, s.err
}

type stubSummarizer struct{ err error }

func (s *stubSummarizer) Summarize(_ context.Context, req summarizer.Request) (summarizer.Result, error) {
	if s.err != nil {
		return summarizer.Result{}, s.err
	}
	return summarizer.Result{Title: "t", Content: "c", Confidence: 0.8}, nil
}

type runnerFixture struct {
	runner     *Runner
	alerter    *recordingAlerter
	adapter    *stubAdapter
	summ       *stubSummarizer
	sources    *mocks.MockSourceRepository
	rawEvents  *mocks.MockRawEventRepository
	normalized *mocks.MockNormalizedEventRepository
	insights   *mocks.MockInsightRepository
	project    *model.Project
}

func newRunnerFixture(t *testing.T, opts Options) *runnerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &runnerFixture{
		alerter:    &recordingAlerter{},
		adapter:    &stubAdapter{},
		summ:       &stubSummarizer{},
		sources:    mocks.NewMockSourceRepository(ctrl),
		rawEvents:  mocks.NewMockRawEventRepository(ctrl),
		normalized: mocks.NewMockNormalizedEventRepository(ctrl),
		insights:   mocks.NewMockInsightRepository(ctrl),
		project:    &model.Project{ID: uuid.New(), ProjectID: "ethereum", Name: "Ethereum"},
	}

	logger := testLogger()
	ingestStage := ingest.NewStage(source.NewRegistry(f.adapter), f.sources, f.rawEvents, logger)
	normalizeStage := normalize.NewStage(f.rawEvents, f.normalized, 100, logger)
	insightStage := insight.NewStage(f.normalized, f.insights, f.summ, insight.Config{
		Languages: []string{"en"},
		Lookback:  7 * 24 * time.Hour,
		Cooldown:  12 * time.Hour,
		MaxEvents: 200,
	}, logger)

	f.runner = NewRunner(ingestStage, normalizeStage, insightStage, f.alerter, opts, logger)
	return f
}

func (f *runnerFixture) githubSource() model.Source {
	return model.Source{ID: uuid.New(), ProjectID: f.project.ID, SourceType: model.SourceTypeGitHub, Reference: "ethereum/go-ethereum"}
}

func TestRunProject_AllStagesSucceed(t *testing.T) {
	f := newRunnerFixture(t, Options{})
	src := f.githubSource()

	f.adapter.candidates = []source.Candidate{{
		UniqueID: "abc", EventType: model.EventTypeGitHubCommit,
		Payload: []byte(`{"sha":"abc","message":"fix: x"}`), Timestamp: time.Now().UTC(),
	}}

	f.sources.EXPECT().ListByProject(gomock.Any(), f.project.ID, model.SourceTypeGitHub).
		Return([]model.Source{src}, nil)
	f.rawEvents.EXPECT().LatestTimestamp(gomock.Any(), src.ID).Return(nil, nil)
	f.rawEvents.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil)

	raw := model.RawEvent{
		ID: uuid.New(), ProjectID: f.project.ID, SourceID: src.ID,
		EventType: model.EventTypeGitHubCommit, UniqueID: "abc",
		Payload: []byte(`{"sha":"abc","message":"fix: x"}`), EventTimestamp: time.Now().UTC(),
	}
	f.rawEvents.EXPECT().ListUnprocessed(gomock.Any(), f.project.ID, 100).Return([]model.RawEvent{raw}, nil)
	f.normalized.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil)

	f.insights.EXPECT().Latest(gomock.Any(), f.project.ID, model.InsightTypeSummary7d).Return(nil, nil)
	f.normalized.EXPECT().ListSince(gomock.Any(), f.project.ID, gomock.Any()).
		Return([]model.NormalizedEvent{{ID: uuid.New(), EntityType: "commit", Title: "fix: x"}}, nil)
	f.insights.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	report := f.runner.RunProject(context.Background(), f.project, model.SourceTypeGitHub)

	assert.Equal(t, StageSuccess, report.Ingest.Status)
	assert.Equal(t, StageSuccess, report.Normalize.Status)
	assert.Equal(t, StageSuccess, report.Insight.Status)
	assert.False(t, report.Failed())
	assert.Equal(t, 1, report.Ingest.Counts["inserted"])
	assert.Equal(t, 1, report.Normalize.Counts["normalized"])
	assert.Empty(t, f.alerter.alerts)
}

func TestRunProject_IngestFailureStillNormalizes(t *testing.T) {
	f := newRunnerFixture(t, Options{})
	src := f.githubSource()
	f.adapter.err = errors.New("github down")

	f.sources.EXPECT().ListByProject(gomock.Any(), f.project.ID, model.SourceTypeGitHub).
		Return([]model.Source{src}, nil)
	f.rawEvents.EXPECT().LatestTimestamp(gomock.Any(), src.ID).Return(nil, nil)

	// Normalize still drains the existing backlog.
	f.rawEvents.EXPECT().ListUnprocessed(gomock.Any(), f.project.ID, 100).Return(nil, nil)

	f.insights.EXPECT().Latest(gomock.Any(), f.project.ID, model.InsightTypeSummary7d).Return(nil, nil)
	f.normalized.EXPECT().ListSince(gomock.Any(), f.project.ID, gomock.Any()).Return(nil, nil)

	report := f.runner.RunProject(context.Background(), f.project, model.SourceTypeGitHub)

	assert.Equal(t, StageFailed, report.Ingest.Status)
	assert.Equal(t, StageSuccess, report.Normalize.Status)
	assert.Equal(t, StageSkipped, report.Insight.Status)
	assert.True(t, report.Failed())

	require.Len(t, f.alerter.alerts, 1)
	assert.Equal(t, alert.AlertTypeAdapterFatal, f.alerter.alerts[0].Type)
}

func TestRunProject_NoAdapterIsSkip(t *testing.T) {
	f := newRunnerFixture(t, Options{})

	f.rawEvents.EXPECT().ListUnprocessed(gomock.Any(), f.project.ID, 100).Return(nil, nil)
	f.insights.EXPECT().Latest(gomock.Any(), f.project.ID, model.InsightTypeSummary7d).Return(nil, nil)
	f.normalized.EXPECT().ListSince(gomock.Any(), f.project.ID, gomock.Any()).Return(nil, nil)

	report := f.runner.RunProject(context.Background(), f.project, model.SourceTypeTwitter)

	assert.Equal(t, StageSkipped, report.Ingest.Status)
	assert.Equal(t, "no adapter", report.Ingest.Detail)
	assert.False(t, report.Failed())
	assert.Empty(t, f.alerter.alerts)
}

func TestRunProject_SkipFlags(t *testing.T) {
	f := newRunnerFixture(t, Options{SkipIngest: true, SkipInsights: true})

	f.rawEvents.EXPECT().ListUnprocessed(gomock.Any(), f.project.ID, 100).Return(nil, nil)

	report := f.runner.RunProject(context.Background(), f.project, model.SourceTypeGitHub)

	assert.Equal(t, StageSkipped, report.Ingest.Status)
	assert.Equal(t, StageSuccess, report.Normalize.Status)
	assert.Equal(t, StageSkipped, report.Insight.Status)
}

func TestRunProject_SummarizerFailureAlerts(t *testing.T) {
	f := newRunnerFixture(t, Options{SkipIngest: true})
	f.summ.err = errors.New("model unavailable")

	f.rawEvents.EXPECT().ListUnprocessed(gomock.Any(), f.project.ID, 100).Return(nil, nil)
	f.insights.EXPECT().Latest(gomock.Any(), f.project.ID, model.InsightTypeSummary7d).Return(nil, nil)
	f.normalized.EXPECT().ListSince(gomock.Any(), f.project.ID, gomock.Any()).
		Return([]model.NormalizedEvent{{ID: uuid.New(), EntityType: "commit", Title: "t"}}, nil)

	report := f.runner.RunProject(context.Background(), f.project, model.SourceTypeGitHub)

	assert.Equal(t, StageFailed, report.Insight.Status)
	require.Len(t, f.alerter.alerts, 1)
	assert.Equal(t, alert.AlertTypeSummarizerFailed, f.alerter.alerts[0].Type)
}

func TestRunProject_PanicRecovered(t *testing.T) {
	f := newRunnerFixture(t, Options{})
	f.adapter.panicMsg = "boom"
	src := f.githubSource()

	f.sources.EXPECT().ListByProject(gomock.Any(), f.project.ID, model.SourceTypeGitHub).
		Return([]model.Source{src}, nil)
	f.rawEvents.EXPECT().LatestTimestamp(gomock.Any(), src.ID).Return(nil, nil)

	var report ProjectReport
	assert.NotPanics(t, func() {
		report = f.runner.RunProject(context.Background(), f.project, model.SourceTypeGitHub)
	})

	assert.True(t, report.Failed())
	// The adapter panicked during ingest, so ingest carries the failure.
	assert.Equal(t, StageFailed, report.Ingest.Status)
	require.Error(t, report.Ingest.Err)
	assert.Contains(t, report.Ingest.Err.Error(), "ingest")
	assert.NotEqual(t, StageFailed, report.Insight.Status)

	require.Len(t, f.alerter.alerts, 1)
	assert.Equal(t, alert.AlertTypeProjectFailed, f.alerter.alerts[0].Type)
	assert.Equal(t, "ingest", f.alerter.alerts[0].Fields["stage"])
}

func TestRunProject_NilProjectFailsWithoutPanic(t *testing.T) {
	f := newRunnerFixture(t, Options{})

	var report ProjectReport
	assert.NotPanics(t, func() {
		report = f.runner.RunProject(context.Background(), nil, model.SourceTypeGitHub)
	})

	assert.True(t, report.Failed())
	assert.Equal(t, StageFailed, report.Ingest.Status)
	require.Error(t, report.Ingest.Err)
}
