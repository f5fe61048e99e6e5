package postgres

import (
	"context"
	"fmt"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/google/uuid"
)

type SourceRepo struct {
	db *DB
}

func NewSourceRepo(db *DB) *SourceRepo {
	return &SourceRepo{db: db}
}

func (r *SourceRepo) Upsert(ctx context.Context, s *model.Source) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO sources (project_id, source_type, reference, metadata)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id, source_type, reference) DO UPDATE SET
			metadata = EXCLUDED.metadata
		RETURNING id
	`, s.ProjectID, s.SourceType, s.Reference, s.Metadata).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert source: %w", err)
	}
	return id, nil
}

func (r *SourceRepo) ListByProject(ctx context.Context, projectID uuid.UUID, sourceType model.SourceType) ([]model.Source, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, source_type, reference, metadata, created_at
		FROM sources
		WHERE project_id = $1 AND source_type = $2
		ORDER BY reference
	`, projectID, sourceType)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []model.Source
	for rows.Next() {
		var s model.Source
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.SourceType, &s.Reference, &s.Metadata, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}
