package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"stock-research-agent/internal/agent"
	"stock-research-agent/internal/store"
	"stock-research-agent/internal/types"
)

type stubPrices struct {
	data *types.StockData
	err  error
}

func (s *stubPrices) FetchStockData(_ context.Context, _, _ string) (*types.StockData, error) {
	return s.data, s.err
}

type stubNews struct {
	articles []types.NewsArticle
	err      error
}

func (s *stubNews) FetchNews(_ context.Context, _, _ string, _ int) ([]types.NewsArticle, error) {
	return s.articles, s.err
}

type scriptedGateway struct {
	responses []string
	prompts   []string
}

func (g *scriptedGateway) Query(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	i := len(g.prompts) - 1
	if i >= len(g.responses) {
		i = len(g.responses) - 1
	}
	return g.responses[i], nil
}

func testConfig() *store.Config {
	cfg := &store.Config{}
	cfg.Agent.MaxIterations = 5
	cfg.Agent.FunctionCallMarker = "FUNCTION_CALL:"
	cfg.Agent.CompletionMarker = "FINAL_ANALYSIS"
	cfg.Stock.Period = "1wk"
	cfg.News.Days = 7
	return cfg
}

func testStockData() *types.StockData {
	return &types.StockData{
		Name:         "Acme Corp",
		Symbol:       "ACME",
		CurrentPrice: 105.0,
		DailyChanges: []types.DailyChange{
			{Date: "2026-08-24", Close: 103.0, PercentChange: 3.0},
			{Date: "2026-08-25", Close: 102.0, PercentChange: -0.97},
		},
	}
}

func newTestService(t *testing.T, prices *stubPrices, newsSrc *stubNews, gw *scriptedGateway) *Service {
	t.Helper()
	t.Setenv("RESEARCH_LOG_DIR", t.TempDir())

	svc, err := NewService(testConfig(), prices, newsSrc, gw)
	if err != nil {
		t.Fatalf("Failed to build service: %v", err)
	}
	return svc
}

func TestRunSuccess(t *testing.T) {
	gw := &scriptedGateway{responses: []string{"FINAL_ANALYSIS: news clearly moves this stock."}}
	svc := newTestService(t, &stubPrices{data: testStockData()}, &stubNews{
		articles: []types.NewsArticle{{Title: "big launch", Source: "Reuters", PublishedAt: "2026-08-24"}},
	}, gw)

	resp, err := svc.Run(context.Background(), types.ResearchRequest{Ticker: "ACME"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.Status != "success" {
		t.Errorf("Expected success status, got %q", resp.Status)
	}
	if resp.AgentIterations != 1 {
		t.Errorf("Expected 1 agent iteration, got %d", resp.AgentIterations)
	}
	if !strings.Contains(resp.ComprehensiveReport, "news clearly moves this stock.") {
		t.Errorf("Report missing agent conclusion:\n%s", resp.ComprehensiveReport)
	}
	if !strings.Contains(resp.FluctuationAnalysis, "Acme Corp") {
		t.Errorf("Missing fluctuation analysis:\n%s", resp.FluctuationAnalysis)
	}
	if !strings.Contains(resp.NewsSummary, "big launch") {
		t.Errorf("Missing news summary:\n%s", resp.NewsSummary)
	}
	if !strings.Contains(resp.CorrelationAnalysis, "CORRELATION STATISTICS") {
		t.Errorf("Missing correlation statistics:\n%s", resp.CorrelationAnalysis)
	}
}

func TestRunNoData(t *testing.T) {
	gw := &scriptedGateway{responses: []string{"FINAL_ANALYSIS done"}}
	svc := newTestService(t, &stubPrices{data: nil}, &stubNews{}, gw)

	_, err := svc.Run(context.Background(), types.ResearchRequest{Ticker: "NOPE"})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Expected ErrNoData, got %v", err)
	}
}

func TestRunNewsFailure(t *testing.T) {
	gw := &scriptedGateway{responses: []string{"FINAL_ANALYSIS done"}}
	svc := newTestService(t, &stubPrices{data: testStockData()}, &stubNews{err: errors.New("rate limited")}, gw)

	_, err := svc.Run(context.Background(), types.ResearchRequest{Ticker: "ACME"})
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("Expected news failure to surface, got %v", err)
	}
}

func TestRunFunctionCallFlow(t *testing.T) {
	gw := &scriptedGateway{responses: []string{
		"FUNCTION_CALL: analyze_price_data|{}",
		"FINAL_ANALYSIS: done after one call.",
	}}
	svc := newTestService(t, &stubPrices{data: testStockData()}, &stubNews{}, gw)

	resp, err := svc.Run(context.Background(), types.ResearchRequest{Ticker: "ACME"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.AgentIterations != 2 {
		t.Errorf("Expected 2 iterations, got %d", resp.AgentIterations)
	}
	if len(gw.prompts) != 2 {
		t.Fatalf("Expected 2 gateway calls, got %d", len(gw.prompts))
	}
	if !strings.Contains(gw.prompts[1], "you called analyze_price_data") {
		t.Errorf("Second prompt missing call history:\n%s", gw.prompts[1])
	}
}

func TestRunExhaustionStillReports(t *testing.T) {
	gw := &scriptedGateway{responses: []string{"still thinking"}}
	svc := newTestService(t, &stubPrices{data: testStockData()}, &stubNews{}, gw)

	resp, err := svc.Run(context.Background(), types.ResearchRequest{Ticker: "ACME"})
	if err != nil {
		t.Fatalf("Exhaustion must not fail the run, got %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("Expected success status, got %q", resp.Status)
	}
	if resp.AgentIterations != 5 {
		t.Errorf("Expected the full iteration budget, got %d", resp.AgentIterations)
	}
	if !strings.Contains(resp.ComprehensiveReport, "did not reach a conclusion") {
		t.Errorf("Report must state the agent ran out of iterations:\n%s", resp.ComprehensiveReport)
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt("FUNCTION_CALL:", "FINAL_ANALYSIS")

	for _, want := range []string{
		"FUNCTION_CALL: function_name|json_input",
		"FINAL_ANALYSIS",
		agent.OpAnalyzePriceData,
		agent.OpAnalyzeNewsSentiment,
		agent.OpCorrelateNewsAndPrice,
		agent.OpGenerateInvestmentInsight,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("System prompt missing %q", want)
		}
	}
}

func TestBuildInitialQuery(t *testing.T) {
	stock := testStockData()
	query := BuildInitialQuery(stock, nil, MergeByDate(stock, nil))

	if !strings.Contains(query, "Acme Corp") || !strings.Contains(query, "ACME") {
		t.Error("Initial query missing company identity")
	}
	if !strings.Contains(query, `"daily_changes"`) {
		t.Error("Initial query missing embedded stock JSON")
	}
	if !strings.Contains(query, `"price_change_percent"`) {
		t.Error("Initial query missing merged data JSON")
	}
}
