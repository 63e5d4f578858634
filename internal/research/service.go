// Package research orchestrates a full research run: fetch price and news
// data, compute direct statistics, drive the agent loop, and assemble the
// final report.
package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stock-research-agent/internal/agent"
	"stock-research-agent/internal/analysis"
	"stock-research-agent/internal/interfaces"
	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/news"
	"stock-research-agent/internal/researchlog"
	"stock-research-agent/internal/stock"
	"stock-research-agent/internal/store"
	"stock-research-agent/internal/trace"
	"stock-research-agent/internal/types"
)

// ErrNoData indicates the ticker resolved no price data. Handlers map it
// to a 404.
var ErrNoData = errors.New("stock data not found")

// Service runs research requests. It is safe for concurrent use: each
// request gets its own agent loop over the shared read-only registry.
type Service struct {
	cfg      *store.Config
	prices   interfaces.PriceSource
	news     interfaces.NewsSource
	gateway  interfaces.Gateway
	registry *agent.Registry
}

func NewService(cfg *store.Config, prices interfaces.PriceSource, newsSource interfaces.NewsSource, gateway interfaces.Gateway) (*Service, error) {
	registry, err := agent.NewRegistry(map[string]agent.Func{
		agent.OpAnalyzePriceData:          analysis.AnalyzePriceData,
		agent.OpAnalyzeNewsSentiment:      analysis.AnalyzeNewsSentiment,
		agent.OpCorrelateNewsAndPrice:     analysis.CorrelateNewsAndPrice,
		agent.OpGenerateInvestmentInsight: analysis.GenerateInvestmentInsight,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build function registry: %w", err)
	}
	return &Service{
		cfg:      cfg,
		prices:   prices,
		news:     newsSource,
		gateway:  gateway,
		registry: registry,
	}, nil
}

// Prices exposes the price source for handlers that serve raw data.
func (s *Service) Prices() interfaces.PriceSource { return s.prices }

// News exposes the news source for handlers that serve raw articles.
func (s *Service) News() interfaces.NewsSource { return s.news }

// Run performs the complete research flow for one ticker.
func (s *Service) Run(ctx context.Context, req types.ResearchRequest) (*types.ResearchResponse, error) {
	ctx, span := trace.StartSpan(ctx, "research.Run")
	defer span.End()

	period := req.Period
	if period == "" {
		period = s.cfg.Stock.Period
	}

	stockData, err := s.prices.FetchStockData(ctx, req.Ticker, period)
	if err != nil {
		return nil, fmt.Errorf("fetching stock data for %s: %w", req.Ticker, err)
	}
	if stockData == nil || len(stockData.DailyChanges) == 0 {
		return nil, fmt.Errorf("%w for ticker %s", ErrNoData, req.Ticker)
	}

	fluctuation := stock.AnalyzeFluctuations(stockData)

	articles, err := s.news.FetchNews(ctx, stockData.Name, req.Ticker, s.cfg.News.Days)
	if err != nil {
		return nil, fmt.Errorf("fetching news for %s: %w", req.Ticker, err)
	}
	newsSummary := news.ExtractKeyPoints(articles)

	merged := MergeByDate(stockData, articles)
	correlationText := s.correlationAnalysis(merged)

	result, err := s.runAgent(ctx, stockData, articles, merged)
	if err != nil {
		return nil, err
	}

	resp := &types.ResearchResponse{
		Ticker:              req.Ticker,
		StockData:           stockData,
		FluctuationAnalysis: fluctuation,
		NewsSummary:         newsSummary,
		CorrelationAnalysis: correlationText,
		ComprehensiveReport: buildReport(stockData, fluctuation, newsSummary, correlationText, result),
		AgentIterations:     result.Iterations,
		Status:              "success",
	}

	if err := researchlog.Append(researchlog.Entry{
		Ticker:     req.Ticker,
		Period:     period,
		Outcome:    string(result.Outcome),
		Iterations: result.Iterations,
		Report:     result.FinalText,
	}); err != nil {
		logger.Warn(ctx, "Failed to persist research result", "ticker", req.Ticker, "error", err.Error())
	}

	logger.Research(ctx, req.Ticker, string(result.Outcome), result.Iterations)
	return resp, nil
}

// CorrelationFor computes the direct correlation statistics without
// running the agent. Used by the correlation endpoint.
func (s *Service) CorrelationFor(ctx context.Context, ticker, period string) (*types.StockData, string, error) {
	if period == "" {
		period = s.cfg.Stock.Period
	}
	stockData, err := s.prices.FetchStockData(ctx, ticker, period)
	if err != nil {
		return nil, "", fmt.Errorf("fetching stock data for %s: %w", ticker, err)
	}
	if stockData == nil || len(stockData.DailyChanges) == 0 {
		return nil, "", fmt.Errorf("%w for ticker %s", ErrNoData, ticker)
	}
	articles, err := s.news.FetchNews(ctx, stockData.Name, ticker, s.cfg.News.Days)
	if err != nil {
		return nil, "", fmt.Errorf("fetching news for %s: %w", ticker, err)
	}
	merged := MergeByDate(stockData, articles)
	return stockData, s.correlationAnalysis(merged), nil
}

// correlationAnalysis chains the correlation and insight functions over
// the merged per-date data and renders both results as indented JSON.
func (s *Service) correlationAnalysis(merged map[string]types.DayData) string {
	mergedJSON, _ := json.Marshal(merged)
	correlation := analysis.CorrelateNewsAndPrice(string(mergedJSON))

	correlationJSON, _ := json.Marshal(correlation)
	insight := analysis.GenerateInvestmentInsight(string(correlationJSON))

	corrOut, _ := json.MarshalIndent(correlation, "", "  ")
	insightOut, _ := json.MarshalIndent(insight, "", "  ")
	return fmt.Sprintf("CORRELATION STATISTICS:\n%s\n\nINVESTMENT INSIGHT:\n%s", corrOut, insightOut)
}

func (s *Service) runAgent(ctx context.Context, stockData *types.StockData, articles []types.NewsArticle, merged map[string]types.DayData) (agent.Result, error) {
	loop := agent.New(agent.Config{
		SystemPrompt:       BuildSystemPrompt(s.cfg.Agent.FunctionCallMarker, s.cfg.Agent.CompletionMarker),
		InitialQuery:       BuildInitialQuery(stockData, articles, merged),
		MaxIterations:      s.cfg.Agent.MaxIterations,
		FunctionCallMarker: s.cfg.Agent.FunctionCallMarker,
		CompletionMarker:   s.cfg.Agent.CompletionMarker,
	}, s.gateway, s.registry)

	result, err := loop.Run(ctx)
	if err != nil {
		return agent.Result{}, fmt.Errorf("agent run for %s: %w", stockData.Symbol, err)
	}
	return result, nil
}
