package interfaces

import (
	"context"

	"stock-research-agent/internal/types"
)

// PriceSource fetches historical price data for a ticker
type PriceSource interface {
	FetchStockData(ctx context.Context, ticker, period string) (*types.StockData, error)
}

// NewsSource fetches recent news articles for a company
type NewsSource interface {
	FetchNews(ctx context.Context, companyName, ticker string, days int) ([]types.NewsArticle, error)
}
