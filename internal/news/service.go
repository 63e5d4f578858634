// Package news fetches and summarizes recent articles about a company,
// preferring the NewsAPI and falling back to scraping financial sites.
package news

import (
	"context"
	"time"

	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/types"
)

// Service provides news retrieval with an API-first, scraper-fallback policy
type Service struct {
	apiClient *APIClient
	scraper   *Scraper
	cfg       *ServiceConfig
}

// ServiceConfig configures the news service
type ServiceConfig struct {
	APIKey         string        // NewsAPI key; empty disables the API path
	PageSize       int           // Maximum articles per request
	ScrapeFallback bool          // Whether to scrape when the API yields nothing
	ScraperTimeout time.Duration // Timeout for scraping operations
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		PageSize:       25,
		ScrapeFallback: true,
		ScraperTimeout: 30 * time.Second,
	}
}

// NewService creates a news service
func NewService(cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}

	return &Service{
		apiClient: NewAPIClient(cfg.APIKey, cfg.PageSize),
		scraper:   NewScraper(cfg.ScraperTimeout),
		cfg:       cfg,
	}
}

// FetchNews retrieves articles for a company over the last N days. The
// NewsAPI is the primary source; when it fails or returns nothing, the
// scraper fills in if enabled. An empty article list is not an error.
func (s *Service) FetchNews(ctx context.Context, companyName, ticker string, days int) ([]types.NewsArticle, error) {
	var articles []types.NewsArticle

	if s.cfg.APIKey != "" {
		fetched, err := s.apiClient.FetchNews(ctx, companyName, ticker, days)
		if err != nil {
			logger.ErrorWithErr(ctx, "NewsAPI fetch failed", err, "ticker", ticker)
		} else {
			articles = fetched
		}
	}

	if len(articles) == 0 && s.cfg.ScrapeFallback {
		logger.Info(ctx, "No articles from NewsAPI, scraping fallback sources", "ticker", ticker)
		scraped, err := s.scraper.ScrapeNews(ctx, ticker, s.cfg.PageSize)
		if err != nil {
			logger.ErrorWithErr(ctx, "Scraper fallback failed", err, "ticker", ticker)
		} else {
			articles = scraped
		}
	}

	return articles, nil
}
