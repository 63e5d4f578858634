package research

import (
	"testing"

	"stock-research-agent/internal/types"
)

func TestMergeByDate(t *testing.T) {
	stock := &types.StockData{
		Symbol: "ACME",
		DailyChanges: []types.DailyChange{
			{Date: "2026-08-24", Close: 100.0, PercentChange: 1.5},
			{Date: "2026-08-25", Close: 98.0, PercentChange: -2.0},
		},
	}
	articles := []types.NewsArticle{
		{Title: "launch", PublishedAt: "2026-08-24"},
		{Title: "recall", PublishedAt: "2026-08-24"},
		{Title: "weekend rumor", PublishedAt: "2026-08-23"},
	}

	merged := MergeByDate(stock, articles)

	if len(merged) != 2 {
		t.Fatalf("Expected one entry per trading day, got %d", len(merged))
	}

	day := merged["2026-08-24"]
	if day.PriceChangePercent != 1.5 || day.Close != 100.0 {
		t.Errorf("Unexpected price fields: %+v", day)
	}
	if len(day.NewsArticles) != 2 {
		t.Errorf("Expected 2 articles on 2026-08-24, got %d", len(day.NewsArticles))
	}

	quiet := merged["2026-08-25"]
	if quiet.NewsArticles == nil {
		t.Error("Days without coverage must carry an empty list, not nil")
	}
	if len(quiet.NewsArticles) != 0 {
		t.Errorf("Expected no articles on 2026-08-25, got %d", len(quiet.NewsArticles))
	}

	if _, ok := merged["2026-08-23"]; ok {
		t.Error("Articles outside the price series must be dropped")
	}
}

func TestMergeByDateSkipsUndatedArticles(t *testing.T) {
	stock := &types.StockData{
		DailyChanges: []types.DailyChange{{Date: "2026-08-24", PercentChange: 1.0}},
	}
	articles := []types.NewsArticle{{Title: "no date"}}

	merged := MergeByDate(stock, articles)
	if len(merged["2026-08-24"].NewsArticles) != 0 {
		t.Error("Undated articles must not attach to any day")
	}
}
