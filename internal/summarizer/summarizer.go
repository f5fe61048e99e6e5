// Package summarizer produces natural-language insight summaries from
// normalized event text.
package summarizer

import "context"

// Request carries everything a summarizer needs for one summary in one
// language. EventsText is the pre-formatted, grouped event listing.
type Request struct {
	ProjectID  string
	Language   string
	EventsText string
	EventCount int
}

// Result is one generated summary. Confidence is the model-assigned (or
// fixed) confidence in [0,1].
type Result struct {
	Title      string
	Content    string
	Confidence float64
}

// Summarizer turns a formatted event listing into a short analytical summary.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (Result, error)
}
