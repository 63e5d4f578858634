// Package stock fetches historical price data and derives the daily
// change series the analysis functions consume.
package stock

import (
	"context"
	"fmt"
	"time"

	"stock-research-agent/internal/api"
	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/trace"
	"stock-research-agent/internal/types"
)

// Service fetches price history from the Yahoo Finance chart API
type Service struct {
	client *api.Client
}

// NewService creates a price source backed by Yahoo Finance
func NewService() *Service {
	return &Service{
		client: api.NewClient(
			api.WithBaseURL("https://query1.finance.yahoo.com"),
			api.WithTimeout(30*time.Second),
			api.WithLogging(true),
		),
	}
}

// chartResponse mirrors the subset of the v8 chart payload we read
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				LongName           string  `json:"longName"`
				ShortName          string  `json:"shortName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchStockData fetches the price history for a ticker over the given
// period (1d, 1wk or 1mo; anything else falls back to one week) and
// derives per-day changes from consecutive closes.
func (s *Service) FetchStockData(ctx context.Context, ticker, period string) (*types.StockData, error) {
	ctx, span := trace.StartSpan(ctx, "stock.FetchStockData")
	defer span.End()

	end := time.Now()
	start := end.AddDate(0, 0, -periodDays(period))

	url := fmt.Sprintf("/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		ticker, start.Unix(), end.Unix())

	// Yahoo intermittently drops connections under load; retry before giving up
	resp, err := s.client.GETWithRetry(ctx, url, nil, api.YahooFinanceHeaders())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart data for %s: %w", ticker, err)
	}

	var chart chartResponse
	if err := resp.ParseJSON(&chart); err != nil {
		return nil, err
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for ticker %s", ticker)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data for ticker %s", ticker)
	}

	quote := result.Indicators.Quote[0]
	dates, closes, volumes := alignSeries(result.Timestamp, quote.Close, quote.Volume)
	changes := BuildDailyChanges(dates, closes, volumes)

	if len(changes) == 0 {
		return nil, fmt.Errorf("insufficient price history for ticker %s", ticker)
	}

	name := result.Meta.LongName
	if name == "" {
		name = result.Meta.ShortName
	}
	if name == "" {
		name = ticker
	}

	currentPrice := result.Meta.RegularMarketPrice
	if currentPrice == 0 {
		currentPrice = changes[len(changes)-1].Close
	}

	logger.Info(ctx, "Fetched stock data", "ticker", ticker, "days", len(changes))

	return &types.StockData{
		Name:         name,
		Symbol:       ticker,
		Sector:       "Unknown",
		Industry:     "Unknown",
		CurrentPrice: currentPrice,
		DailyChanges: changes,
	}, nil
}

// periodDays maps a period string to a lookback window in calendar days
func periodDays(period string) int {
	switch period {
	case "1d":
		return 2 // need the previous close to compute one change
	case "1mo":
		return 30
	default:
		return 7
	}
}

// alignSeries pairs timestamps with non-nil closes, dropping gaps
func alignSeries(timestamps []int64, closes []*float64, volumes []*int64) ([]string, []float64, []int64) {
	dates := make([]string, 0, len(timestamps))
	outCloses := make([]float64, 0, len(timestamps))
	outVolumes := make([]int64, 0, len(timestamps))

	for i, ts := range timestamps {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		var vol int64
		if i < len(volumes) && volumes[i] != nil {
			vol = *volumes[i]
		}
		dates = append(dates, time.Unix(ts, 0).UTC().Format("2006-01-02"))
		outCloses = append(outCloses, *closes[i])
		outVolumes = append(outVolumes, vol)
	}

	return dates, outCloses, outVolumes
}

// BuildDailyChanges derives percent changes from consecutive closes. The
// first record is consumed as the baseline, so N closes yield N-1 changes.
func BuildDailyChanges(dates []string, closes []float64, volumes []int64) []types.DailyChange {
	if len(closes) < 2 {
		return nil
	}

	changes := make([]types.DailyChange, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		curr := closes[i]

		pct := 0.0
		if prev != 0 {
			pct = (curr - prev) / prev * 100
		}

		changes = append(changes, types.DailyChange{
			Date:          dates[i],
			Close:         curr,
			PrevClose:     prev,
			Change:        curr - prev,
			PercentChange: pct,
			Volume:        volumes[i],
		})
	}
	return changes
}
