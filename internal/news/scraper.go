package news

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"stock-research-agent/internal/api"
	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/types"
)

// Scraper scrapes financial news sites directly. It serves as a fallback
// when the NewsAPI key is missing or the API returns nothing.
type Scraper struct {
	sources []Source
	timeout time.Duration
}

// Source defines a scrapeable news source
type Source struct {
	Name       string
	BaseURL    string
	SearchPath string // "{symbol}" is replaced with the ticker
	Selectors  Selectors
	RateLimit  time.Duration
}

// Selectors defines CSS selectors for extracting article data
type Selectors struct {
	ArticleContainer string
	Title            string
	URL              string
	Description      string
	PublishedAt      string
}

// NewScraper creates a scraper over the default financial news sources
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: defaultSources(),
		timeout: timeout,
	}
}

func defaultSources() []Source {
	return []Source{
		{
			Name:       "Yahoo Finance",
			BaseURL:    "https://finance.yahoo.com",
			SearchPath: "/quote/{symbol}/news",
			Selectors: Selectors{
				ArticleContainer: "li.js-stream-content, li.stream-item",
				Title:            "h3 a",
				URL:              "h3 a",
				Description:      "p",
				PublishedAt:      "time",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "MarketWatch",
			BaseURL:    "https://www.marketwatch.com",
			SearchPath: "/investing/stock/{symbol}",
			Selectors: Selectors{
				ArticleContainer: "div.article__content",
				Title:            "a.link",
				URL:              "a.link",
				Description:      "p.article__summary",
				PublishedAt:      "span.article__timestamp",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// ScrapeNews fetches articles for a ticker from all configured sources
func (s *Scraper) ScrapeNews(ctx context.Context, ticker string, maxArticles int) ([]types.NewsArticle, error) {
	logger.Info(ctx, "Starting news scraping", "ticker", ticker, "sources", len(s.sources))

	allArticles := []types.NewsArticle{}
	perSource := maxArticles / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	for _, source := range s.sources {
		articles, err := s.scrapeSource(ctx, source, ticker, perSource)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape source", err, "source", source.Name, "ticker", ticker)
			continue
		}
		allArticles = append(allArticles, articles...)

		// Rate limiting between sources
		time.Sleep(source.RateLimit)
	}

	logger.Info(ctx, "News scraping completed", "ticker", ticker, "articles", len(allArticles))
	return allArticles, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, source Source, ticker string, maxArticles int) ([]types.NewsArticle, error) {
	articles := []types.NewsArticle{}

	c := colly.NewCollector(
		colly.AllowedDomains(hostOf(source.BaseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		for key, value := range api.BrowserHeaders() {
			r.Headers.Set(key, value)
		}
	})

	c.OnHTML(source.Selectors.ArticleContainer, func(e *colly.HTMLElement) {
		if len(articles) >= maxArticles {
			return
		}

		title := strings.TrimSpace(e.ChildText(source.Selectors.Title))
		if title == "" {
			return
		}

		articleURL := e.ChildAttr(source.Selectors.URL, "href")
		if articleURL == "" {
			return
		}
		if !strings.HasPrefix(articleURL, "http") {
			articleURL = source.BaseURL + articleURL
		}

		articles = append(articles, types.NewsArticle{
			Title:       title,
			Description: strings.TrimSpace(e.ChildText(source.Selectors.Description)),
			URL:         articleURL,
			Source:      source.Name,
			PublishedAt: normalizeScrapedDate(strings.TrimSpace(e.ChildAttr(source.Selectors.PublishedAt, "datetime"))),
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Scraping error", err, "source", source.Name, "url", r.Request.URL.String())
	})

	searchURL := source.BaseURL + strings.ReplaceAll(source.SearchPath, "{symbol}", strings.ToUpper(ticker))
	if err := c.Visit(searchURL); err != nil {
		return nil, err
	}
	c.Wait()

	return articles, nil
}

// normalizeScrapedDate coerces a scraped timestamp to YYYY-MM-DD; pages
// without machine-readable dates yield today's date.
func normalizeScrapedDate(raw string) string {
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.UTC().Format("2006-01-02")
		}
		if len(raw) >= 10 {
			if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	return time.Now().UTC().Format("2006-01-02")
}

// hostOf extracts the hostname from a URL
func hostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
