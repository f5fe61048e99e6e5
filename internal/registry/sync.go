package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/store"
)

// Sync idempotently mirrors the registry into storage: projects are created
// or have their descriptive fields refreshed, sources are created if absent.
// Nothing is ever deleted.
func Sync(ctx context.Context, projects store.ProjectRepository, sources store.SourceRepository, roster []Project, logger *slog.Logger) error {
	for _, p := range roster {
		proj := &model.Project{
			ProjectID: p.ProjectID,
			Name:      p.Name,
		}
		if p.Category != "" {
			proj.Category = &p.Category
		}
		if p.Token.Symbol != "" {
			proj.TokenSymbol = &p.Token.Symbol
		}
		if p.Description != "" {
			proj.Description = &p.Description
		}

		projectID, err := projects.Upsert(ctx, proj)
		if err != nil {
			return fmt.Errorf("sync project %s: %w", p.ProjectID, err)
		}

		for _, repo := range p.GitHub.Repositories {
			metadata, err := json.Marshal(map[string]string{"owner": repo.Owner, "repo": repo.Repo})
			if err != nil {
				return fmt.Errorf("encode source metadata for %s: %w", repo.Reference(), err)
			}
			src := &model.Source{
				ProjectID:  projectID,
				SourceType: model.SourceTypeGitHub,
				Reference:  repo.Reference(),
				Metadata:   metadata,
			}
			if _, err := sources.Upsert(ctx, src); err != nil {
				return fmt.Errorf("sync source %s for %s: %w", repo.Reference(), p.ProjectID, err)
			}
		}

		logger.Info("synced project",
			"project", p.ProjectID,
			"github_repositories", len(p.GitHub.Repositories),
		)
	}
	return nil
}

// SourceTypes reports which source types a registry entry configures.
// Only types with at least one reference are schedulable for the project.
func (p Project) SourceTypes() []model.SourceType {
	var types []model.SourceType
	if len(p.GitHub.Repositories) > 0 {
		types = append(types, model.SourceTypeGitHub)
	}
	return types
}
