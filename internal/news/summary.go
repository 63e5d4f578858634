package news

import (
	"fmt"
	"sort"
	"strings"

	"stock-research-agent/internal/types"
)

const (
	maxTitlesPerDay   = 3
	maxDescriptionLen = 150
)

// ExtractKeyPoints renders a date-grouped plain-text summary of articles,
// limited to three titles per day with truncated descriptions
func ExtractKeyPoints(articles []types.NewsArticle) string {
	if len(articles) == 0 {
		return "No news articles found for the specified period."
	}

	byDate := make(map[string][]types.NewsArticle)
	for _, a := range articles {
		byDate[a.PublishedAt] = append(byDate[a.PublishedAt], a)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var sb strings.Builder
	sb.WriteString("News Summary:\n\n")

	for _, date := range dates {
		dayArticles := byDate[date]
		fmt.Fprintf(&sb, "Date: %s\n", date)
		fmt.Fprintf(&sb, "Number of articles: %d\n", len(dayArticles))

		for i, a := range dayArticles {
			if i >= maxTitlesPerDay {
				break
			}
			fmt.Fprintf(&sb, "  %d. %s (Source: %s)\n", i+1, a.Title, a.Source)
			if a.Description != "" {
				fmt.Fprintf(&sb, "     %s\n", truncate(a.Description, maxDescriptionLen))
			}
		}

		if len(dayArticles) > maxTitlesPerDay {
			fmt.Fprintf(&sb, "  ... and %d more articles\n", len(dayArticles)-maxTitlesPerDay)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
