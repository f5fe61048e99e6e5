package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000

	// EntityTypeUnknown marks records produced by the fallback extractor.
	EntityTypeUnknown = "unknown"
	EntityTypeCommit  = "commit"
	EntityTypeRelease = "release"
)

// Extracted is the structured projection of one raw event payload.
type Extracted struct {
	EntityType  string
	EntityID    string
	Title       string
	Description string
	Metadata    json.RawMessage
}

// Extractor maps a raw event payload to its structured form.
type Extractor func(raw model.RawEvent) (Extracted, error)

// ExtractorRegistry resolves extractors by event type. Unknown event types
// and extraction failures fall through to a minimal fallback record, so an
// odd payload never wedges the unprocessed queue.
type ExtractorRegistry struct {
	byType map[model.EventType]Extractor
}

func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		byType: map[model.EventType]Extractor{
			model.EventTypeGitHubCommit:  extractCommit,
			model.EventTypeGitHubRelease: extractRelease,
		},
	}
}

// Extract never fails: it returns the extractor's output, or the fallback
// record with fellBack=true when the type is unknown or extraction errored.
func (r *ExtractorRegistry) Extract(raw model.RawEvent) (out Extracted, fellBack bool) {
	extractor, ok := r.byType[raw.EventType]
	if !ok {
		return extractFallback(raw), true
	}
	extracted, err := extractor(raw)
	if err != nil {
		return extractFallback(raw), true
	}
	return extracted, false
}

type commitPayload struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Raw     struct {
		Commit struct {
			Author struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"author"`
		} `json:"commit"`
	} `json:"raw"`
}

func extractCommit(raw model.RawEvent) (Extracted, error) {
	var p commitPayload
	if err := json.Unmarshal(raw.Payload, &p); err != nil {
		return Extracted{}, fmt.Errorf("decode commit payload: %w", err)
	}
	if p.SHA == "" {
		return Extracted{}, fmt.Errorf("commit payload missing sha")
	}

	title, description := splitMessage(p.Message)

	metadata, err := json.Marshal(map[string]string{
		"sha":          p.SHA,
		"author_name":  p.Raw.Commit.Author.Name,
		"author_email": p.Raw.Commit.Author.Email,
	})
	if err != nil {
		return Extracted{}, err
	}

	return Extracted{
		EntityType:  EntityTypeCommit,
		EntityID:    p.SHA,
		Title:       title,
		Description: description,
		Metadata:    metadata,
	}, nil
}

type releasePayload struct {
	UniqueID string `json:"unique_id"`
	TagName  string `json:"tag_name"`
	Name     string `json:"name"`
	Raw      struct {
		ID          int64  `json:"id"`
		Body        string `json:"body"`
		Draft       bool   `json:"draft"`
		Prerelease  bool   `json:"prerelease"`
		TagName     string `json:"tag_name"`
		PublishedAt string `json:"published_at"`
	} `json:"raw"`
}

func extractRelease(raw model.RawEvent) (Extracted, error) {
	var p releasePayload
	if err := json.Unmarshal(raw.Payload, &p); err != nil {
		return Extracted{}, fmt.Errorf("decode release payload: %w", err)
	}
	if p.TagName == "" && p.Name == "" {
		return Extracted{}, fmt.Errorf("release payload missing tag and name")
	}

	label := p.Name
	if label == "" {
		label = p.TagName
	}

	metadata, err := json.Marshal(map[string]any{
		"tag_name":   p.TagName,
		"release_id": p.Raw.ID,
		"draft":      p.Raw.Draft,
		"prerelease": p.Raw.Prerelease,
	})
	if err != nil {
		return Extracted{}, err
	}

	entityID := p.UniqueID
	if entityID == "" {
		entityID = p.TagName
	}

	return Extracted{
		EntityType:  EntityTypeRelease,
		EntityID:    entityID,
		Title:       truncate("Release "+label, maxTitleLen),
		Description: truncate(p.Raw.Body, maxDescriptionLen),
		Metadata:    metadata,
	}, nil
}

func extractFallback(raw model.RawEvent) Extracted {
	return Extracted{
		EntityType: EntityTypeUnknown,
		EntityID:   raw.UniqueID,
		Title:      string(raw.EventType),
		Metadata:   json.RawMessage(`{}`),
	}
}

// splitMessage takes the first line of a commit message as the title and the
// remainder as the description.
func splitMessage(message string) (title, description string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "(no message)", ""
	}
	line, rest, found := strings.Cut(message, "\n")
	title = truncate(strings.TrimSpace(line), maxTitleLen)
	if found {
		description = strings.TrimSpace(rest)
	}
	return title, description
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
