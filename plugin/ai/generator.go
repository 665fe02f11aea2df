// Package ai provides the content generation backend client. It speaks the
// OpenAI-compatible chat completion protocol, which OpenRouter exposes for
// every model it proxies.
package ai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"

	berrors "github.com/hrygo/contentmaker/internal/errors"
)

// Generator produces completion text for a prompt under a system directive.
type Generator interface {
	Generate(ctx context.Context, prompt, systemDirective string) (string, error)
}

// Config holds configuration for the generation backend.
type Config struct {
	APIKey  string
	BaseURL string // Default: https://openrouter.ai/api/v1
	Model   string
	Timeout time.Duration // Per-call budget; 60s when zero.
}

type generator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewGenerator creates a Generator backed by an OpenAI-compatible endpoint.
func NewGenerator(cfg Config) Generator {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = baseURL

	return &generator{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		timeout: timeout,
	}
}

func (g *generator) Generate(ctx context.Context, prompt, systemDirective string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemDirective,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, req)
	latency := time.Since(start)

	if err != nil {
		slog.Error("generation request failed",
			"error", err,
			"latency_ms", latency.Milliseconds())
		return "", classifyError(ctx, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", berrors.EmptyResult("generation backend returned no completion")
	}

	slog.Debug("generation completed",
		"latency_ms", latency.Milliseconds(),
		"tokens", resp.Usage.TotalTokens)

	return resp.Choices[0].Message.Content, nil
}

// classifyError maps a transport failure onto the bot error taxonomy.
func classifyError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return berrors.Timeout("generation call exceeded its time budget")
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return berrors.Upstream(apiErr.Message, err)
	}
	return berrors.Upstream("generation backend request failed", err)
}
