package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	"stock-research-agent/internal/api"
	"stock-research-agent/internal/store"
	"stock-research-agent/internal/trace"
)

// Gateway implements the model gateway against the OpenAI chat completions API
type Gateway struct {
	cfg    *store.Config
	apiKey string
	client *api.Client
}

// New creates an OpenAI-backed gateway with an explicit API key
func New(cfg *store.Config, apiKey string) *Gateway {
	return &Gateway{
		cfg:    cfg,
		apiKey: apiKey,
		client: api.NewClient(
			api.WithBaseURL("https://api.openai.com/v1"),
			api.WithTimeout(time.Duration(cfg.LLM.TimeoutSeconds)*time.Second),
			api.WithHeader("Authorization", "Bearer "+apiKey),
		),
	}
}

// Query sends a single prompt and returns the model's text
func (g *Gateway) Query(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	if g.apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.LLM.TimeoutSeconds)*time.Second)
	defer cancel()

	body := map[string]any{
		"model":       g.cfg.LLM.Model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"temperature": g.cfg.LLM.Temperature,
		"max_tokens":  g.cfg.LLM.MaxTokens,
	}

	resp, err := g.client.POST(ctx, "/chat/completions", body)
	if err != nil {
		return "", err
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return "", err
	}

	if len(r.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
