package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type InsightRepo struct {
	db *DB
}

func NewInsightRepo(db *DB) *InsightRepo {
	return &InsightRepo{db: db}
}

func (r *InsightRepo) Insert(ctx context.Context, i *model.AIInsight) error {
	ids := make([]string, 0, len(i.SourceEventIDs))
	for _, id := range i.SourceEventIDs {
		ids = append(ids, id.String())
	}
	translations, err := json.Marshal(i.Translations)
	if err != nil {
		return fmt.Errorf("marshal translations: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO ai_insights
			(project_id, insight_type, title, content, confidence,
			 source_event_ids, content_translations, metadata, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6::uuid[], $7, $8, $9)
		RETURNING id
	`, i.ProjectID, i.InsightType, i.Title, i.Content, i.Confidence,
		pq.Array(ids), translations, i.Metadata, i.GeneratedAt).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("insert insight: %w", err)
	}
	return nil
}

func (r *InsightRepo) Latest(ctx context.Context, projectID uuid.UUID, insightType model.InsightType) (*model.AIInsight, error) {
	var (
		i            model.AIInsight
		ids          []string
		translations []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, insight_type, title, content, confidence,
		       source_event_ids::text[], content_translations, metadata, generated_at, created_at
		FROM ai_insights
		WHERE project_id = $1 AND insight_type = $2
		ORDER BY generated_at DESC
		LIMIT 1
	`, projectID, insightType).Scan(
		&i.ID, &i.ProjectID, &i.InsightType, &i.Title, &i.Content, &i.Confidence,
		pq.Array(&ids), &translations, &i.Metadata, &i.GeneratedAt, &i.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest insight: %w", err)
	}

	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse source event id %q: %w", raw, err)
		}
		i.SourceEventIDs = append(i.SourceEventIDs, id)
	}
	if len(translations) > 0 {
		if err := json.Unmarshal(translations, &i.Translations); err != nil {
			return nil, fmt.Errorf("unmarshal translations: %w", err)
		}
	}
	return &i, nil
}
