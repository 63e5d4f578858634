package news

import (
	"strings"
	"testing"

	"stock-research-agent/internal/types"
)

func TestExtractKeyPointsEmpty(t *testing.T) {
	if got := ExtractKeyPoints(nil); got != "No news articles found for the specified period." {
		t.Errorf("Unexpected empty-input summary: %q", got)
	}
}

func TestExtractKeyPointsGroupsByDate(t *testing.T) {
	articles := []types.NewsArticle{
		{Title: "later story", Source: "Reuters", PublishedAt: "2026-08-25"},
		{Title: "early story", Source: "Bloomberg", PublishedAt: "2026-08-24", Description: "short description"},
	}

	summary := ExtractKeyPoints(articles)

	if !strings.Contains(summary, "Date: 2026-08-24") || !strings.Contains(summary, "Date: 2026-08-25") {
		t.Errorf("Summary missing date headers:\n%s", summary)
	}
	if strings.Index(summary, "2026-08-24") > strings.Index(summary, "2026-08-25") {
		t.Error("Dates must appear in ascending order")
	}
	if !strings.Contains(summary, "1. early story (Source: Bloomberg)") {
		t.Errorf("Summary missing article line:\n%s", summary)
	}
	if !strings.Contains(summary, "short description") {
		t.Errorf("Summary missing description:\n%s", summary)
	}
}

func TestExtractKeyPointsCapsTitles(t *testing.T) {
	articles := []types.NewsArticle{
		{Title: "one", PublishedAt: "2026-08-24"},
		{Title: "two", PublishedAt: "2026-08-24"},
		{Title: "three", PublishedAt: "2026-08-24"},
		{Title: "four", PublishedAt: "2026-08-24"},
		{Title: "five", PublishedAt: "2026-08-24"},
	}

	summary := ExtractKeyPoints(articles)

	if strings.Contains(summary, "four") || strings.Contains(summary, "five") {
		t.Errorf("Only three titles per day should appear:\n%s", summary)
	}
	if !strings.Contains(summary, "... and 2 more articles") {
		t.Errorf("Summary missing overflow note:\n%s", summary)
	}
	if !strings.Contains(summary, "Number of articles: 5") {
		t.Errorf("Day count must cover all articles:\n%s", summary)
	}
}

func TestExtractKeyPointsTruncatesDescription(t *testing.T) {
	long := strings.Repeat("x", 200)
	articles := []types.NewsArticle{
		{Title: "t", PublishedAt: "2026-08-24", Description: long},
	}

	summary := ExtractKeyPoints(articles)

	if strings.Contains(summary, long) {
		t.Error("Long descriptions must be truncated")
	}
	if !strings.Contains(summary, strings.Repeat("x", 150)+"...") {
		t.Error("Truncated description must end with an ellipsis")
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2026-08-24T15:04:05Z":      "2026-08-24",
		"2026-08-25T02:30:00+05:30": "2026-08-24", // normalized in UTC
		"2026-08-24":                "2026-08-24",
		"bad":                       "bad",
	}
	for in, want := range cases {
		if got := normalizeDate(in); got != want {
			t.Errorf("normalizeDate(%q) = %q, want %q", in, got, want)
		}
	}
}
