package insight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/store/mocks"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/summarizer"
)

type fakeSummarizer struct {
	requests []summarizer.Request
	err      error
}

func (f *fakeSummarizer) Summarize(_ context.Context, req summarizer.Request) (summarizer.Result, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return summarizer.Result{}, f.err
	}
	return summarizer.Result{
		Title:      req.ProjectID + " summary (" + req.Language + ")",
		Content:    "content in " + req.Language,
		Confidence: 0.8,
	}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var baseTime = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func defaultConfig() Config {
	return Config{
		Languages: []string{"en", "es"},
		Lookback:  7 * 24 * time.Hour,
		Cooldown:  12 * time.Hour,
		MaxEvents: 200,
	}
}

func newTestStage(t *testing.T, cfg Config) (*Stage, *mocks.MockNormalizedEventRepository, *mocks.MockInsightRepository, *fakeSummarizer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	normalized := mocks.NewMockNormalizedEventRepository(ctrl)
	insights := mocks.NewMockInsightRepository(ctrl)
	summ := &fakeSummarizer{}
	stage := NewStage(normalized, insights, summ, cfg, testLogger())
	stage.nowFn = func() time.Time { return baseTime }
	return stage, normalized, insights, summ
}

func makeEvents(n int) []model.NormalizedEvent {
	events := make([]model.NormalizedEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, model.NormalizedEvent{
			ID:             uuid.New(),
			EntityType:     "commit",
			Title:          fmt.Sprintf("commit %d", i),
			EventTimestamp: baseTime.Add(-time.Duration(i) * time.Hour),
		})
	}
	return events
}

func TestRun_GeneratesInsightWithTranslations(t *testing.T) {
	stage, normalized, insights, summ := newTestStage(t, defaultConfig())
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}
	events := makeEvents(3)

	insights.EXPECT().Latest(gomock.Any(), project.ID, model.InsightTypeSummary7d).Return(nil, nil)
	normalized.EXPECT().ListSince(gomock.Any(), project.ID, baseTime.Add(-7*24*time.Hour)).Return(events, nil)

	var saved *model.AIInsight
	insights.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, i *model.AIInsight) error {
			saved = i
			return nil
		})

	result, err := stage.Run(context.Background(), project)
	require.NoError(t, err)
	assert.True(t, result.Generated)
	assert.Equal(t, 3, result.EventCount)

	require.NotNil(t, saved)
	assert.Equal(t, project.ID, saved.ProjectID)
	assert.Equal(t, model.InsightTypeSummary7d, saved.InsightType)
	assert.Equal(t, "content in en", saved.Content)
	assert.Equal(t, map[string]string{"es": "content in es"}, saved.Translations)
	assert.Equal(t, 0.8, saved.Confidence)
	assert.Len(t, saved.SourceEventIDs, 3)
	assert.Equal(t, baseTime, saved.GeneratedAt)
	assert.Contains(t, string(saved.Metadata), `"days_analyzed":7`)
	assert.Contains(t, string(saved.Metadata), `"event_count":3`)

	require.Len(t, summ.requests, 2)
	assert.Equal(t, "en", summ.requests[0].Language)
	assert.Equal(t, "es", summ.requests[1].Language)
	assert.Contains(t, summ.requests[0].EventsText, "### Commit (3 events)")
}

func TestRun_CooldownSkips(t *testing.T) {
	stage, _, insights, summ := newTestStage(t, defaultConfig())
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}

	// Latest insight is one hour old: well inside the 12h window.
	insights.EXPECT().Latest(gomock.Any(), project.ID, model.InsightTypeSummary7d).
		Return(&model.AIInsight{GeneratedAt: baseTime.Add(-time.Hour)}, nil)

	result, err := stage.Run(context.Background(), project)
	require.NoError(t, err)
	assert.False(t, result.Generated)
	assert.Equal(t, ReasonCooldown, result.Reason)
	assert.Empty(t, summ.requests)
}

func TestRun_CooldownExpiredGenerates(t *testing.T) {
	stage, normalized, insights, _ := newTestStage(t, defaultConfig())
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}

	// Latest insight is thirteen hours old: cooldown has lapsed.
	insights.EXPECT().Latest(gomock.Any(), project.ID, model.InsightTypeSummary7d).
		Return(&model.AIInsight{GeneratedAt: baseTime.Add(-13 * time.Hour)}, nil)
	normalized.EXPECT().ListSince(gomock.Any(), project.ID, gomock.Any()).Return(makeEvents(1), nil)
	insights.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	result, err := stage.Run(context.Background(), project)
	require.NoError(t, err)
	assert.True(t, result.Generated)
}

func TestRun_ForceBypassesCooldown(t *testing.T) {
	cfg := defaultConfig()
	cfg.Force = true
	stage, normalized, insights, _ := newTestStage(t, cfg)
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}

	// Latest is never consulted when forcing.
	normalized.EXPECT().ListSince(gomock.Any(), project.ID, gomock.Any()).Return(makeEvents(1), nil)
	insights.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	result, err := stage.Run(context.Background(), project)
	require.NoError(t, err)
	assert.True(t, result.Generated)
}

func TestRun_NoEventsSkips(t *testing.T) {
	stage, normalized, insights, summ := newTestStage(t, defaultConfig())
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}

	insights.EXPECT().Latest(gomock.Any(), project.ID, model.InsightTypeSummary7d).Return(nil, nil)
	normalized.EXPECT().ListSince(gomock.Any(), project.ID, gomock.Any()).Return(nil, nil)

	result, err := stage.Run(context.Background(), project)
	require.NoError(t, err)
	assert.False(t, result.Generated)
	assert.Equal(t, ReasonNoEvents, result.Reason)
	assert.Empty(t, summ.requests)
}

func TestRun_SummarizerFailurePersistsNothing(t *testing.T) {
	stage, normalized, insights, summ := newTestStage(t, defaultConfig())
	summ.err = errors.New("rate limit reached")
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}

	insights.EXPECT().Latest(gomock.Any(), project.ID, model.InsightTypeSummary7d).Return(nil, nil)
	normalized.EXPECT().ListSince(gomock.Any(), project.ID, gomock.Any()).Return(makeEvents(2), nil)
	// No Insert expectation: a summarizer failure must not write a row.

	_, err := stage.Run(context.Background(), project)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit reached")
}

func TestRun_SourceEventIDsCapped(t *testing.T) {
	stage, normalized, insights, _ := newTestStage(t, defaultConfig())
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}

	insights.EXPECT().Latest(gomock.Any(), project.ID, model.InsightTypeSummary7d).Return(nil, nil)
	normalized.EXPECT().ListSince(gomock.Any(), project.ID, gomock.Any()).Return(makeEvents(80), nil)

	var saved *model.AIInsight
	insights.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, i *model.AIInsight) error {
			saved = i
			return nil
		})

	result, err := stage.Run(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, 80, result.EventCount)
	require.NotNil(t, saved)
	assert.Len(t, saved.SourceEventIDs, model.MaxInsightSourceEvents)
}

func TestRun_MaxEventsBoundsContribution(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaxEvents = 10
	cfg.Languages = []string{"en"}
	stage, normalized, insights, summ := newTestStage(t, cfg)
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}

	insights.EXPECT().Latest(gomock.Any(), project.ID, model.InsightTypeSummary7d).Return(nil, nil)
	normalized.EXPECT().ListSince(gomock.Any(), project.ID, gomock.Any()).Return(makeEvents(30), nil)
	insights.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	result, err := stage.Run(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, 10, result.EventCount)
	require.Len(t, summ.requests, 1)
	assert.Equal(t, 10, summ.requests[0].EventCount)
}

func TestFormatEvents_GroupCapAndOrder(t *testing.T) {
	events := makeEvents(25)
	events = append(events, model.NormalizedEvent{
		ID: uuid.New(), EntityType: "release", Title: "Release v1", EventTimestamp: baseTime,
	})

	text := formatEvents(events)
	assert.Contains(t, text, "### Commit (25 events)")
	assert.Contains(t, text, "... and 5 more")
	assert.Contains(t, text, "### Release (1 events)")
	// Groups render in sorted entity-type order.
	assert.Less(t, strings.Index(text, "### Commit"), strings.Index(text, "### Release"))
}
