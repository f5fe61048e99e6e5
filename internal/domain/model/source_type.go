package model

import "fmt"

type SourceType string

const (
	SourceTypeGitHub  SourceType = "github"
	SourceTypeTwitter SourceType = "twitter"
	SourceTypeOnchain SourceType = "onchain"
)

func (s SourceType) String() string {
	return string(s)
}

// ParseSourceType validates a source type tag from configuration.
func ParseSourceType(raw string) (SourceType, error) {
	switch SourceType(raw) {
	case SourceTypeGitHub, SourceTypeTwitter, SourceTypeOnchain:
		return SourceType(raw), nil
	default:
		return "", fmt.Errorf("unknown source type: %q", raw)
	}
}

type EventType string

const (
	EventTypeGitHubCommit  EventType = "github_commit"
	EventTypeGitHubRelease EventType = "github_release"
)

func (e EventType) String() string {
	return string(e)
}
