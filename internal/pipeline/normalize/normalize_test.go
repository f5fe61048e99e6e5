package normalize

import (
	"context"
	"encoding/json"
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
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func commitEvent(message string) model.RawEvent {
	payload, _ := json.Marshal(map[string]any{
		"unique_id": "abc123",
		"sha":       "abc123",
		"message":   message,
		"author":    "alice",
		"raw": map[string]any{
			"commit": map[string]any{
				"author": map[string]any{"name": "Alice", "email": "alice@example.com"},
			},
		},
	})
	return model.RawEvent{
		ID:             uuid.New(),
		ProjectID:      uuid.New(),
		SourceID:       uuid.New(),
		EventType:      model.EventTypeGitHubCommit,
		UniqueID:       "abc123",
		Payload:        payload,
		EventTimestamp: time.Now().UTC(),
	}
}

func releaseEvent(tag, name, body string) model.RawEvent {
	payload, _ := json.Marshal(map[string]any{
		"unique_id": "release_99",
		"tag_name":  tag,
		"name":      name,
		"raw": map[string]any{
			"id":         99,
			"body":       body,
			"draft":      false,
			"prerelease": true,
			"tag_name":   tag,
		},
	})
	return model.RawEvent{
		ID:        uuid.New(),
		EventType: model.EventTypeGitHubRelease,
		UniqueID:  "release_99",
		Payload:   payload,
	}
}

func TestExtractCommit(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "single line",
			message:   "fix: handle nil pointer",
			wantTitle: "fix: handle nil pointer",
			wantDesc:  "",
		},
		{
			name:      "multi line",
			message:   "feat: add cache\n\nDetailed explanation\nover two lines.",
			wantTitle: "feat: add cache",
			wantDesc:  "Detailed explanation\nover two lines.",
		},
		{
			name:      "long first line truncated",
			message:   strings.Repeat("x", 300),
			wantTitle: strings.Repeat("x", 200),
			wantDesc:  "",
		},
		{
			name:      "empty message",
			message:   "",
			wantTitle: "(no message)",
			wantDesc:  "",
		},
	}

	registry := NewExtractorRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, fellBack := registry.Extract(commitEvent(tt.message))
			assert.False(t, fellBack)
			assert.Equal(t, EntityTypeCommit, out.EntityType)
			assert.Equal(t, "abc123", out.EntityID)
			assert.Equal(t, tt.wantTitle, out.Title)
			assert.Equal(t, tt.wantDesc, out.Description)

			var meta map[string]string
			require.NoError(t, json.Unmarshal(out.Metadata, &meta))
			assert.Equal(t, "abc123", meta["sha"])
			assert.Equal(t, "Alice", meta["author_name"])
			assert.Equal(t, "alice@example.com", meta["author_email"])
		})
	}
}

func TestExtractRelease(t *testing.T) {
	registry := NewExtractorRegistry()

	out, fellBack := registry.Extract(releaseEvent("v1.2.0", "Pectra", strings.Repeat("y", 1500)))
	assert.False(t, fellBack)
	assert.Equal(t, EntityTypeRelease, out.EntityType)
	assert.Equal(t, "release_99", out.EntityID)
	assert.Equal(t, "Release Pectra", out.Title)
	assert.Len(t, out.Description, 1000)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(out.Metadata, &meta))
	assert.Equal(t, "v1.2.0", meta["tag_name"])
	assert.Equal(t, float64(99), meta["release_id"])
	assert.Equal(t, false, meta["draft"])
	assert.Equal(t, true, meta["prerelease"])
}

func TestExtractRelease_EntityIDFallsBackToTag(t *testing.T) {
	registry := NewExtractorRegistry()

	payload, _ := json.Marshal(map[string]any{
		"tag_name": "v2.0.0",
		"name":     "Big one",
		"raw":      map[string]any{"id": 7},
	})
	raw := model.RawEvent{EventType: model.EventTypeGitHubRelease, Payload: payload}

	out, fellBack := registry.Extract(raw)
	assert.False(t, fellBack)
	assert.Equal(t, "v2.0.0", out.EntityID)
}

func TestExtractRelease_TagFallsBackWhenNameEmpty(t *testing.T) {
	registry := NewExtractorRegistry()

	out, fellBack := registry.Extract(releaseEvent("v0.1.0", "", ""))
	assert.False(t, fellBack)
	assert.Equal(t, "Release v0.1.0", out.Title)
}

func TestExtract_UnknownTypeFallsBack(t *testing.T) {
	registry := NewExtractorRegistry()

	raw := model.RawEvent{EventType: "telegram_post", UniqueID: "tg-1", Payload: []byte(`{"x":1}`)}
	out, fellBack := registry.Extract(raw)
	assert.True(t, fellBack)
	assert.Equal(t, EntityTypeUnknown, out.EntityType)
	assert.Equal(t, "tg-1", out.EntityID)
	assert.Equal(t, "telegram_post", out.Title)
}

func TestExtract_MalformedPayloadFallsBack(t *testing.T) {
	registry := NewExtractorRegistry()

	raw := model.RawEvent{EventType: model.EventTypeGitHubCommit, UniqueID: "bad", Payload: []byte(`not json`)}
	out, fellBack := registry.Extract(raw)
	assert.True(t, fellBack)
	assert.Equal(t, EntityTypeUnknown, out.EntityType)
}

func TestRun_DrainsInBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	rawEvents := mocks.NewMockRawEventRepository(ctrl)
	normalized := mocks.NewMockNormalizedEventRepository(ctrl)
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}

	first := []model.RawEvent{commitEvent("a"), commitEvent("b")}
	second := []model.RawEvent{commitEvent("c")}

	gomock.InOrder(
		rawEvents.EXPECT().ListUnprocessed(gomock.Any(), project.ID, 2).Return(first, nil),
		rawEvents.EXPECT().ListUnprocessed(gomock.Any(), project.ID, 2).Return(second, nil),
	)
	normalized.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil).Times(3)

	stage := NewStage(rawEvents, normalized, 2, testLogger())
	result, err := stage.Run(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 3, Normalized: 3, Skipped: 0}, result)
}

func TestRun_DuplicateNormalizationSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	rawEvents := mocks.NewMockRawEventRepository(ctrl)
	normalized := mocks.NewMockNormalizedEventRepository(ctrl)
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}

	rawEvents.EXPECT().ListUnprocessed(gomock.Any(), project.ID, 100).
		Return([]model.RawEvent{commitEvent("a")}, nil)
	normalized.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(false, nil)

	stage := NewStage(rawEvents, normalized, 100, testLogger())
	result, err := stage.Run(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 1, Normalized: 0, Skipped: 1}, result)
}

func TestRun_CarriesRawEventFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	rawEvents := mocks.NewMockRawEventRepository(ctrl)
	normalized := mocks.NewMockNormalizedEventRepository(ctrl)
	project := &model.Project{ID: uuid.New(), ProjectID: "ethereum"}

	raw := commitEvent("fix: one")
	rawEvents.EXPECT().ListUnprocessed(gomock.Any(), project.ID, 100).
		Return([]model.RawEvent{raw}, nil)
	normalized.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *model.NormalizedEvent) (bool, error) {
			assert.Equal(t, raw.ID, e.RawEventID)
			assert.Equal(t, raw.ProjectID, e.ProjectID)
			assert.Equal(t, raw.SourceID, e.SourceID)
			assert.Equal(t, raw.EventType, e.EventType)
			assert.Equal(t, raw.EventTimestamp, e.EventTimestamp)
			return true, nil
		})

	stage := NewStage(rawEvents, normalized, 100, testLogger())
	_, err := stage.Run(context.Background(), project)
	require.NoError(t, err)
}
