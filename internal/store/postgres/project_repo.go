package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/google/uuid"
)

type ProjectRepo struct {
	db *DB
}

func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Upsert creates the project or refreshes its descriptive fields on re-sync.
func (r *ProjectRepo) Upsert(ctx context.Context, p *model.Project) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO projects (project_id, name, category, token_symbol, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			token_symbol = EXCLUDED.token_symbol,
			description = EXCLUDED.description,
			updated_at = now()
		RETURNING id
	`, p.ProjectID, p.Name, p.Category, p.TokenSymbol, p.Description).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert project: %w", err)
	}
	return id, nil
}

func (r *ProjectRepo) FindBySlug(ctx context.Context, projectID string) (*model.Project, error) {
	var p model.Project
	err := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, name, category, token_symbol, description, created_at, updated_at
		FROM projects
		WHERE project_id = $1
	`, projectID).Scan(
		&p.ID, &p.ProjectID, &p.Name, &p.Category,
		&p.TokenSymbol, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}
