package analysis

import (
	"encoding/json"
	"fmt"
	"sort"

	"stock-research-agent/internal/types"
)

// SourceCount pairs a news source with its article count
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// NewsAnalysis aggregates a set of articles by date and source
type NewsAnalysis struct {
	TotalArticles  int            `json:"total_articles"`
	DaysWithNews   int            `json:"days_with_news"`
	ArticlesByDate map[string]int `json:"articles_by_date"`
	TopSources     []SourceCount  `json:"top_sources"`
	DateRange      []string       `json:"date_range"`
}

// AnalyzeNewsSentiment groups articles by publication date and source.
// The payload is the JSON encoding of a []types.NewsArticle. Top sources
// are the five largest by count, ties resolved by first-seen order. The
// date range relies on ISO dates sorting lexicographically.
func AnalyzeNewsSentiment(payload string) any {
	var articles []types.NewsArticle
	if err := json.Unmarshal([]byte(payload), &articles); err != nil {
		return errorResult(fmt.Sprintf("invalid news payload: %v", err))
	}

	byDate := make(map[string]int)
	sourceCounts := make(map[string]int)
	sourceOrder := []string{}

	for _, article := range articles {
		if article.PublishedAt != "" {
			byDate[article.PublishedAt]++
		}
		if article.Source != "" {
			if _, seen := sourceCounts[article.Source]; !seen {
				sourceOrder = append(sourceOrder, article.Source)
			}
			sourceCounts[article.Source]++
		}
	}

	// Stable sort over first-seen order keeps ties deterministic
	top := make([]SourceCount, 0, len(sourceOrder))
	for _, src := range sourceOrder {
		top = append(top, SourceCount{Source: src, Count: sourceCounts[src]})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > maxTopSources {
		top = top[:maxTopSources]
	}

	dateRange := []string{}
	if len(byDate) > 0 {
		minDate, maxDate := "", ""
		for date := range byDate {
			if minDate == "" || date < minDate {
				minDate = date
			}
			if date > maxDate {
				maxDate = date
			}
		}
		dateRange = []string{minDate, maxDate}
	}

	return NewsAnalysis{
		TotalArticles:  len(articles),
		DaysWithNews:   len(byDate),
		ArticlesByDate: byDate,
		TopSources:     top,
		DateRange:      dateRange,
	}
}
