package research

import "stock-research-agent/internal/types"

// MergeByDate joins the daily price series with the articles published on
// each trading day. Every trading day appears in the result; days without
// coverage carry an empty article list. Articles dated outside the price
// series (weekends, holidays) are dropped.
func MergeByDate(stock *types.StockData, articles []types.NewsArticle) map[string]types.DayData {
	byDate := make(map[string][]types.NewsArticle)
	for _, a := range articles {
		if a.PublishedAt == "" {
			continue
		}
		byDate[a.PublishedAt] = append(byDate[a.PublishedAt], a)
	}

	merged := make(map[string]types.DayData, len(stock.DailyChanges))
	for _, change := range stock.DailyChanges {
		news := byDate[change.Date]
		if news == nil {
			news = []types.NewsArticle{}
		}
		merged[change.Date] = types.DayData{
			PriceChangePercent: change.PercentChange,
			Close:              change.Close,
			NewsArticles:       news,
		}
	}
	return merged
}
