// Package github implements the GitHub source adapter. It pulls recent
// commits and releases for an "owner/repo" reference through the REST v3 API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/retry"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/source"
)

type Config struct {
	APIURL     string
	Token      string
	FetchLimit int
	RateRPS    float64
	RateBurst  int
	Timeout    time.Duration
}

// Adapter talks to the GitHub REST API. All requests pass through a shared
// rate limiter so a roster with many repositories stays under the API quota.
type Adapter struct {
	client  *resty.Client
	limiter *rate.Limiter
	limit   int
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Adapter {
	client := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/vnd.github.v3+json")
	if cfg.Token != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.Token)
	}

	limit := cfg.FetchLimit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	rps := cfg.RateRPS
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Adapter{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		limit:   limit,
		logger:  logger.With("adapter", "github"),
	}
}

func (a *Adapter) Type() model.SourceType {
	return model.SourceTypeGitHub
}

// Fetch returns commits and releases for the reference newer than since.
// Commit and release failures are independent: if commits fetch but releases
// fail, the commits are still returned alongside the error so the caller can
// ingest what arrived.
func (a *Adapter) Fetch(ctx context.Context, reference string, since *time.Time) ([]source.Candidate, error) {
	owner, repo, err := splitReference(reference)
	if err != nil {
		return nil, retry.Terminal(err)
	}

	commits, commitErr := a.fetchCommits(ctx, owner, repo, since)
	releases, releaseErr := a.fetchReleases(ctx, owner, repo, since)

	candidates := make([]source.Candidate, 0, len(commits)+len(releases))
	candidates = append(candidates, commits...)
	candidates = append(candidates, releases...)

	switch {
	case commitErr != nil && releaseErr != nil:
		return nil, fmt.Errorf("fetch %s: commits: %w; releases: %v", reference, commitErr, releaseErr)
	case commitErr != nil:
		return candidates, fmt.Errorf("fetch %s commits: %w", reference, commitErr)
	case releaseErr != nil:
		return candidates, fmt.Errorf("fetch %s releases: %w", reference, releaseErr)
	}
	return candidates, nil
}

type apiCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
		Committer struct {
			Date string `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
	Author *struct {
		Login string `json:"login"`
	} `json:"author"`
}

type apiRelease struct {
	ID          int64  `json:"id"`
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	Body        string `json:"body"`
	PublishedAt string `json:"published_at"`
	CreatedAt   string `json:"created_at"`
}

func (a *Adapter) fetchCommits(ctx context.Context, owner, repo string, since *time.Time) ([]source.Candidate, error) {
	var items []json.RawMessage
	params := map[string]string{"per_page": fmt.Sprintf("%d", a.limit)}
	if since != nil {
		params["since"] = since.UTC().Format(time.RFC3339)
	}
	if err := a.get(ctx, fmt.Sprintf("/repos/%s/%s/commits", owner, repo), params, &items); err != nil {
		return nil, err
	}

	candidates := make([]source.Candidate, 0, len(items))
	for _, item := range items {
		var c apiCommit
		if err := json.Unmarshal(item, &c); err != nil {
			return nil, retry.Terminal(fmt.Errorf("decode commit: %w", err))
		}
		if c.SHA == "" {
			continue
		}
		author := c.Commit.Author.Name
		if c.Author != nil && c.Author.Login != "" {
			author = c.Author.Login
		}
		// raw keeps the untouched API item so downstream stages can read
		// fields this adapter never modeled.
		payload, err := json.Marshal(map[string]any{
			"unique_id": c.SHA,
			"sha":       c.SHA,
			"message":   c.Commit.Message,
			"author":    author,
			"raw":       item,
		})
		if err != nil {
			return nil, retry.Terminal(fmt.Errorf("encode commit %s: %w", c.SHA, err))
		}
		candidates = append(candidates, source.Candidate{
			UniqueID:  c.SHA,
			EventType: model.EventTypeGitHubCommit,
			Payload:   payload,
			Timestamp: firstTimestamp(c.Commit.Author.Date, c.Commit.Committer.Date),
		})
	}
	return candidates, nil
}

func (a *Adapter) fetchReleases(ctx context.Context, owner, repo string, since *time.Time) ([]source.Candidate, error) {
	var items []json.RawMessage
	params := map[string]string{"per_page": fmt.Sprintf("%d", a.limit)}
	if err := a.get(ctx, fmt.Sprintf("/repos/%s/%s/releases", owner, repo), params, &items); err != nil {
		return nil, err
	}

	candidates := make([]source.Candidate, 0, len(items))
	for _, item := range items {
		var r apiRelease
		if err := json.Unmarshal(item, &r); err != nil {
			return nil, retry.Terminal(fmt.Errorf("decode release: %w", err))
		}
		if r.ID == 0 {
			continue
		}
		ts := firstTimestamp(r.PublishedAt, r.CreatedAt)
		// The releases endpoint has no since filter, so drop stale tags here.
		if since != nil && !ts.After(*since) {
			continue
		}
		uniqueID := fmt.Sprintf("release_%d", r.ID)
		payload, err := json.Marshal(map[string]any{
			"unique_id": uniqueID,
			"tag_name":  r.TagName,
			"name":      r.Name,
			"raw":       item,
		})
		if err != nil {
			return nil, retry.Terminal(fmt.Errorf("encode release %d: %w", r.ID, err))
		}
		candidates = append(candidates, source.Candidate{
			UniqueID:  uniqueID,
			EventType: model.EventTypeGitHubRelease,
			Payload:   payload,
			Timestamp: ts,
		})
	}
	return candidates, nil
}

func (a *Adapter) get(ctx context.Context, path string, params map[string]string, out any) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return retry.Terminal(err)
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get(path)
	if err != nil {
		return retry.Transient(fmt.Errorf("GET %s: %w", path, err))
	}
	if resp.IsError() {
		err := fmt.Errorf("GET %s: status %d", path, resp.StatusCode())
		if retry.ClassifyHTTPStatus(resp.StatusCode()).IsTransient() {
			a.logger.Warn("github request throttled or unavailable",
				"path", path, "status", resp.StatusCode())
			return retry.Transient(err)
		}
		return retry.Terminal(err)
	}
	return nil
}

func splitReference(reference string) (owner, repo string, err error) {
	parts := strings.SplitN(reference, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed github reference %q, want owner/repo", reference)
	}
	return parts[0], parts[1], nil
}

// firstTimestamp picks the first parseable RFC3339 candidate, falling back to
// the current time so an event never lands with a zero timestamp.
func firstTimestamp(candidates ...string) time.Time {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, c); err == nil {
			return ts.UTC()
		}
	}
	return time.Now().UTC()
}
