package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Project is a tracked entity (e.g. a crypto protocol). The slug ProjectID is
// the stable human-chosen identifier; ID is the database key.
type Project struct {
	ID          uuid.UUID `db:"id"`
	ProjectID   string    `db:"project_id"`
	Name        string    `db:"name"`
	Category    *string   `db:"category"`
	TokenSymbol *string   `db:"token_symbol"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Source is one concrete data origin belonging to a project, e.g. a GitHub
// repository. Unique on (project_id, source_type, reference).
type Source struct {
	ID         uuid.UUID       `db:"id"`
	ProjectID  uuid.UUID       `db:"project_id"`
	SourceType SourceType      `db:"source_type"`
	Reference  string          `db:"reference"`
	Metadata   json.RawMessage `db:"metadata"`
	CreatedAt  time.Time       `db:"created_at"`
}
