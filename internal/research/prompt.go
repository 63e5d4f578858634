package research

import (
	"encoding/json"
	"fmt"

	"stock-research-agent/internal/agent"
	"stock-research-agent/internal/types"
)

// BuildSystemPrompt describes the call grammar and the available analysis
// functions to the model. The markers are injected so the prompt always
// matches what the loop actually scans for.
func BuildSystemPrompt(functionCallMarker, completionMarker string) string {
	return fmt.Sprintf(`You are a stock research agent that analyzes price movements and news coverage step by step.

You can call analysis functions by responding with exactly one line in this format:
%s function_name|json_input

Available functions:
- %s: input is the stock data JSON; returns price statistics (average daily change, up/down days, biggest gain and loss).
- %s: input is the news articles JSON array; returns article counts by date and top sources.
- %s: input is the merged per-date JSON object; returns whether news days move the price differently from quiet days.
- %s: input is the correlation result JSON; returns a correlation level, news impact and a recommended strategy.

Call one function at a time and wait for its result. When your research is complete, respond with a report that begins with %s followed by your findings. Do not combine a function call and a final answer in the same response.`,
		functionCallMarker,
		agent.OpAnalyzePriceData,
		agent.OpAnalyzeNewsSentiment,
		agent.OpCorrelateNewsAndPrice,
		agent.OpGenerateInvestmentInsight,
		completionMarker)
}

// BuildInitialQuery embeds the fetched data as JSON so the model can pass
// it back verbatim to the analysis functions.
func BuildInitialQuery(stock *types.StockData, articles []types.NewsArticle, merged map[string]types.DayData) string {
	stockJSON, _ := json.Marshal(stock)
	newsJSON, _ := json.Marshal(articles)
	mergedJSON, _ := json.Marshal(merged)

	return fmt.Sprintf(`Research %s (%s): determine whether news coverage drives its price changes and what an investor should do about it.

STOCK DATA:
%s

NEWS ARTICLES:
%s

MERGED DAILY DATA:
%s

Analyze the price data, the news coverage, and the correlation between them, then produce your final report.`,
		stock.Name, stock.Symbol, stockJSON, newsJSON, mergedJSON)
}
