package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"stock-research-agent/internal/api"
	"stock-research-agent/internal/store"
	"stock-research-agent/internal/trace"
)

// Gateway implements the model gateway against the Gemini generateContent API
type Gateway struct {
	cfg      *store.Config
	apiKey   string
	client   *api.Client
	endpoint string
}

// New creates a Gemini-backed gateway. The API key is an explicit
// dependency; callers typically read GEMINI_API_KEY and pass it in.
func New(cfg *store.Config, apiKey string) *Gateway {
	// Default public endpoint; override via GEMINI_API_ENDPOINT for proxies
	endpoint := "https://generativelanguage.googleapis.com/v1beta"
	if ep := os.Getenv("GEMINI_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}

	return &Gateway{
		cfg:    cfg,
		apiKey: apiKey,
		client: api.NewClient(
			api.WithBaseURL(endpoint),
			api.WithTimeout(time.Duration(cfg.LLM.TimeoutSeconds)*time.Second),
			api.WithLogging(true),
		),
		endpoint: endpoint,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Query sends a single prompt and returns the model's text. No retries,
// no streaming; a per-call timeout bounds the request.
func (g *Gateway) Query(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	if g.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY missing")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.LLM.TimeoutSeconds)*time.Second)
	defer cancel()

	model := g.cfg.LLM.Model
	if model == "" {
		model = "gemini-pro"
	}

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:     g.cfg.LLM.Temperature,
			MaxOutputTokens: g.cfg.LLM.MaxTokens,
		},
	}

	path := fmt.Sprintf("/models/%s:generateContent?key=%s", model, url.QueryEscape(g.apiKey))
	resp, err := g.client.POST(ctx, path, body)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	var r generateResponse
	if err := resp.ParseJSON(&r); err != nil {
		return "", err
	}

	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
