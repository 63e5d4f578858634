package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"stock-research-agent/internal/types"
)

// SignificantDay is a date whose absolute price move met the significance
// threshold, with up to the first three headlines from that day
type SignificantDay struct {
	Date        string   `json:"date"`
	PriceChange float64  `json:"price_change"`
	NewsCount   int      `json:"news_count"`
	NewsTitles  []string `json:"news_titles"`
}

// CorrelationAnalysis compares price behavior on news days vs quiet days
type CorrelationAnalysis struct {
	DaysWithNews              int              `json:"days_with_news"`
	DaysWithoutNews           int              `json:"days_without_news"`
	AvgPriceChangeWithNews    float64          `json:"avg_price_change_with_news"`
	AvgPriceChangeWithoutNews float64          `json:"avg_price_change_without_news"`
	Difference                float64          `json:"difference"`
	HasCorrelation            bool             `json:"has_correlation"`
	CorrelationStrength       float64          `json:"correlation_strength"`
	SignificantPriceDays      []SignificantDay `json:"significant_price_days"`
}

// CorrelateNewsAndPrice partitions dates into news and no-news buckets and
// compares mean percent changes. The payload is the JSON encoding of a
// map[string]types.DayData keyed by YYYY-MM-DD. Bucket means are 0 when a
// bucket is empty; strength is |difference| normalized by the larger
// absolute bucket mean, 0 when both means are 0. Dates are processed in
// chronological order so the significant-day list is deterministic.
func CorrelateNewsAndPrice(payload string) any {
	var byDate map[string]types.DayData
	if err := json.Unmarshal([]byte(payload), &byDate); err != nil {
		return errorResult(fmt.Sprintf("invalid correlation payload: %v", err))
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var withNewsSum, withoutNewsSum float64
	withNews, withoutNews := 0, 0
	significant := []SignificantDay{}

	for _, date := range dates {
		day := byDate[date]
		if len(day.NewsArticles) > 0 {
			withNews++
			withNewsSum += day.PriceChangePercent
		} else {
			withoutNews++
			withoutNewsSum += day.PriceChangePercent
		}

		if math.Abs(day.PriceChangePercent) >= SignificantMoveThreshold {
			titles := []string{}
			for i, article := range day.NewsArticles {
				if i >= maxTitlesPerDay {
					break
				}
				titles = append(titles, article.Title)
			}
			significant = append(significant, SignificantDay{
				Date:        date,
				PriceChange: day.PriceChangePercent,
				NewsCount:   len(day.NewsArticles),
				NewsTitles:  titles,
			})
		}
	}

	avgWith, avgWithout := 0.0, 0.0
	if withNews > 0 {
		avgWith = withNewsSum / float64(withNews)
	}
	if withoutNews > 0 {
		avgWithout = withoutNewsSum / float64(withoutNews)
	}

	diff := avgWith - avgWithout
	strength := 0.0
	if denom := math.Max(math.Abs(avgWith), math.Abs(avgWithout)); denom > 0 {
		strength = math.Abs(diff) / denom
	}

	return CorrelationAnalysis{
		DaysWithNews:              withNews,
		DaysWithoutNews:           withoutNews,
		AvgPriceChangeWithNews:    avgWith,
		AvgPriceChangeWithoutNews: avgWithout,
		Difference:                diff,
		HasCorrelation:            math.Abs(diff) > CorrelationThreshold,
		CorrelationStrength:       strength,
		SignificantPriceDays:      significant,
	}
}
