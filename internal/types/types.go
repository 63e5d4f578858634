package types

// DailyChange is one trading day of price movement for a symbol.
// PercentChange is derived from consecutive closes at fetch time.
type DailyChange struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Close         float64 `json:"close"`
	PrevClose     float64 `json:"prev_close"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	Volume        int64   `json:"volume"`
}

// StockData holds basic company info plus the daily change series
type StockData struct {
	Name         string        `json:"name"`
	Symbol       string        `json:"symbol"`
	Sector       string        `json:"sector"`
	Industry     string        `json:"industry"`
	CurrentPrice float64       `json:"current_price"`
	DailyChanges []DailyChange `json:"daily_changes"`
}

// NewsArticle is a single news item normalized from any source
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"` // YYYY-MM-DD
	Content     string `json:"content,omitempty"`
}

// DayData merges one calendar date's price movement with the news
// published that day. Dates with price data but no articles carry an
// empty article list.
type DayData struct {
	PriceChangePercent float64       `json:"price_change_percent"`
	Close              float64       `json:"close"`
	NewsArticles       []NewsArticle `json:"news_articles"`
}

// ResearchRequest is the inbound request for a research run
type ResearchRequest struct {
	Ticker string `json:"ticker"`
	Period string `json:"period"`
}

// ResearchResponse is the complete result of a research run.
// Status is always set; Error carries the failure text when Status is "error".
type ResearchResponse struct {
	Ticker              string     `json:"ticker"`
	StockData           *StockData `json:"stock_data,omitempty"`
	FluctuationAnalysis string     `json:"fluctuation_analysis,omitempty"`
	NewsSummary         string     `json:"news_summary,omitempty"`
	CorrelationAnalysis string     `json:"correlation_analysis,omitempty"`
	ComprehensiveReport string     `json:"comprehensive_report,omitempty"`
	AgentIterations     int        `json:"agent_iterations,omitempty"`
	Status              string     `json:"status"`
	Error               string     `json:"error,omitempty"`
}
