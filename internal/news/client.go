package news

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"stock-research-agent/internal/api"
	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/trace"
	"stock-research-agent/internal/types"
)

// APIClient fetches articles from the NewsAPI /v2/everything endpoint
type APIClient struct {
	client   *api.Client
	apiKey   string
	pageSize int
}

// NewAPIClient creates a NewsAPI client. The API key is an explicit
// dependency; callers typically read NEWSAPI_KEY and pass it in.
func NewAPIClient(apiKey string, pageSize int) *APIClient {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &APIClient{
		client: api.NewClient(
			api.WithBaseURL("https://newsapi.org"),
			api.WithTimeout(30*time.Second),
			api.WithLogging(true),
		),
		apiKey:   apiKey,
		pageSize: pageSize,
	}
}

type everythingResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// FetchNews queries for articles mentioning the company or its ticker
// within the last N days, sorted by relevancy. Publication timestamps
// normalize to YYYY-MM-DD.
func (c *APIClient) FetchNews(ctx context.Context, companyName, ticker string, days int) ([]types.NewsArticle, error) {
	ctx, span := trace.StartSpan(ctx, "news.FetchNews")
	defer span.End()

	if c.apiKey == "" {
		return nil, fmt.Errorf("NEWSAPI_KEY missing")
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	query := fmt.Sprintf("%s OR %s", companyName, ticker)
	path := fmt.Sprintf("/v2/everything?q=%s&from=%s&to=%s&language=en&sortBy=relevancy&pageSize=%d",
		url.QueryEscape(query),
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
		c.pageSize)

	resp, err := c.client.GETWithRetry(ctx, path, nil, api.NewsAPIHeaders(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}

	var r everythingResponse
	if err := resp.ParseJSON(&r); err != nil {
		return nil, err
	}

	articles := make([]types.NewsArticle, 0, len(r.Articles))
	for _, a := range r.Articles {
		articles = append(articles, types.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: normalizeDate(a.PublishedAt),
			Content:     a.Content,
		})
	}

	logger.Info(ctx, "Fetched news articles", "ticker", ticker, "count", len(articles))
	return articles, nil
}

// normalizeDate reduces an RFC3339 publication timestamp to YYYY-MM-DD.
// Unparsable timestamps pass through unchanged.
func normalizeDate(published string) string {
	if t, err := time.Parse(time.RFC3339, published); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	if len(published) >= 10 {
		return published[:10]
	}
	return published
}
