package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the top-level projects.yaml shape.
type Document struct {
	Projects []Project `yaml:"projects"`
}

// Project is one declarative registry entry. The registry is read-only to
// the pipeline core; it is synced into storage at startup.
type Project struct {
	ProjectID   string     `yaml:"project_id"`
	Name        string     `yaml:"name"`
	Category    string     `yaml:"category"`
	Description string     `yaml:"description"`
	Token       Token      `yaml:"token"`
	GitHub      GitHubSpec `yaml:"github"`
}

type Token struct {
	Symbol string `yaml:"symbol"`
}

type GitHubSpec struct {
	Repositories []Repository `yaml:"repositories"`
}

// Repository locates one GitHub repo. Reference returns the canonical
// owner/repo form used as the source reference.
type Repository struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
}

func (r Repository) Reference() string {
	return r.Owner + "/" + r.Repo
}

// Load reads and validates a projects.yaml document.
func Load(path string) ([]Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projects file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse projects file: %w", err)
	}
	if len(doc.Projects) == 0 {
		return nil, fmt.Errorf("projects file %s defines no projects", path)
	}

	seen := make(map[string]struct{}, len(doc.Projects))
	for i, p := range doc.Projects {
		if p.ProjectID == "" {
			return nil, fmt.Errorf("project at index %d is missing project_id", i)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("project %q is missing name", p.ProjectID)
		}
		if _, dup := seen[p.ProjectID]; dup {
			return nil, fmt.Errorf("duplicate project_id %q", p.ProjectID)
		}
		seen[p.ProjectID] = struct{}{}
		for _, repo := range p.GitHub.Repositories {
			if repo.Owner == "" || repo.Repo == "" {
				return nil, fmt.Errorf("project %q has a repository entry missing owner or repo", p.ProjectID)
			}
		}
	}
	return doc.Projects, nil
}

// Filter narrows projects to the requested ids. An unknown id is a
// configuration error and fails before any stage runs.
func Filter(projects []Project, only []string) ([]Project, error) {
	if len(only) == 0 {
		return projects, nil
	}

	byID := make(map[string]Project, len(projects))
	for _, p := range projects {
		byID[p.ProjectID] = p
	}

	filtered := make([]Project, 0, len(only))
	for _, id := range only {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("project %q not found in registry", id)
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}
