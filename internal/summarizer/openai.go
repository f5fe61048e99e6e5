package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/retry"
)

const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 500
	fixedConfidence    = 0.8
)

type OpenAIConfig struct {
	APIKey  string
	APIBase string
	Model   string
	Timeout time.Duration
}

// OpenAI calls the chat-completions API. One call per language; the caller
// owns cooldowns and retries.
type OpenAI struct {
	client *resty.Client
	model  string
	logger *slog.Logger
}

func NewOpenAI(cfg OpenAIConfig, logger *slog.Logger) *OpenAI {
	client := resty.New().
		SetBaseURL(cfg.APIBase).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &OpenAI{
		client: client,
		model:  cfg.Model,
		logger: logger.With("component", "summarizer"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (o *OpenAI) Summarize(ctx context.Context, req Request) (Result, error) {
	body := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(req.Language)},
			{Role: "user", Content: userPrompt(req)},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}

	var out chatResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return Result{}, retry.Transient(fmt.Errorf("chat completion: %w", err))
	}
	if resp.IsError() {
		msg := fmt.Sprintf("status %d", resp.StatusCode())
		if out.Error != nil {
			msg = fmt.Sprintf("status %d: %s", resp.StatusCode(), out.Error.Message)
		}
		err := fmt.Errorf("chat completion: %s", msg)
		if retry.ClassifyHTTPStatus(resp.StatusCode()).IsTransient() {
			return Result{}, retry.Transient(err)
		}
		return Result{}, retry.Terminal(err)
	}
	if len(out.Choices) == 0 {
		return Result{}, fmt.Errorf("chat completion: empty choices for project %s", req.ProjectID)
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return Result{}, fmt.Errorf("chat completion: blank content for project %s", req.ProjectID)
	}

	o.logger.Debug("summary generated",
		"project", req.ProjectID, "language", req.Language, "events", req.EventCount)

	return Result{
		Title:      titleFor(req),
		Content:    content,
		Confidence: fixedConfidence,
	}, nil
}

func systemPrompt(language string) string {
	base := "You are a factual crypto project analyst. Summarize development " +
		"activity objectively. Never speculate on price or give investment advice."
	if language != "" && language != "en" {
		return base + fmt.Sprintf(" Respond in the language with ISO 639-1 code %q.", language)
	}
	return base
}

func userPrompt(req Request) string {
	return fmt.Sprintf(
		"Project: %s\nTotal events: %d\n\nRecent activity:\n%s\n\n"+
			"Write a concise summary (2-4 sentences) of what this project shipped "+
			"and changed in this period.",
		req.ProjectID, req.EventCount, req.EventsText)
}

func titleFor(req Request) string {
	switch req.Language {
	case "es":
		return fmt.Sprintf("Resumen de actividad de %s", req.ProjectID)
	default:
		return fmt.Sprintf("%s activity summary", req.ProjectID)
	}
}
