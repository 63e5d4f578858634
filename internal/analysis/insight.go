package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// KeyEvent links a significant price move to the headline most likely
// responsible for it
type KeyEvent struct {
	Date        string  `json:"date"`
	PriceChange float64 `json:"price_change"`
	LikelyCause string  `json:"likely_cause"`
}

// InvestmentInsight is the agent-facing interpretation of a correlation result
type InvestmentInsight struct {
	CorrelationDetected   bool       `json:"correlation_detected"`
	CorrelationLevel      string     `json:"correlation_level"`
	CorrelationStrength   float64    `json:"correlation_strength"`
	NewsImpact            string     `json:"news_impact"`
	RecommendedStrategy   string     `json:"recommended_strategy"`
	KeyMarketMovingEvents []KeyEvent `json:"key_market_moving_events"`
}

// GenerateInvestmentInsight maps a correlation result onto a strength label,
// an impact direction and one of three canned strategies. The payload is the
// JSON encoding of CorrelationAnalysis. Key events come from the three
// largest significant moves by absolute change, keeping only those that
// had at least one article.
func GenerateInvestmentInsight(payload string) any {
	var corr CorrelationAnalysis
	if err := json.Unmarshal([]byte(payload), &corr); err != nil {
		return errorResult(fmt.Sprintf("invalid insight payload: %v", err))
	}

	level := "Weak"
	if corr.CorrelationStrength > StrongCorrelation {
		level = "Strong"
	} else if corr.CorrelationStrength > ModerateCorrelation {
		level = "Moderate"
	}

	impact := "negative"
	if corr.AvgPriceChangeWithNews > 0 {
		impact = "positive"
	}

	var strategy string
	switch {
	case corr.HasCorrelation && corr.CorrelationStrength > ModerateCorrelation && impact == "positive":
		strategy = "Consider buying on significant news days, particularly positive news."
	case corr.HasCorrelation && corr.CorrelationStrength > ModerateCorrelation:
		strategy = "Consider selling or hedging on significant news days, as news tends to drive prices down."
	default:
		strategy = "No clear news-based strategy recommended due to weak correlation."
	}

	days := make([]SignificantDay, len(corr.SignificantPriceDays))
	copy(days, corr.SignificantPriceDays)
	sort.SliceStable(days, func(i, j int) bool {
		return math.Abs(days[i].PriceChange) > math.Abs(days[j].PriceChange)
	})

	// Only the three largest moves are considered; a top mover without
	// news is skipped, not backfilled from further down the ranking.
	if len(days) > maxKeyEvents {
		days = days[:maxKeyEvents]
	}

	events := []KeyEvent{}
	for _, day := range days {
		if day.NewsCount == 0 {
			continue
		}
		cause := "No title available"
		if len(day.NewsTitles) > 0 {
			cause = day.NewsTitles[0]
		}
		events = append(events, KeyEvent{
			Date:        day.Date,
			PriceChange: day.PriceChange,
			LikelyCause: cause,
		})
	}

	return InvestmentInsight{
		CorrelationDetected:   corr.HasCorrelation,
		CorrelationLevel:      level,
		CorrelationStrength:   corr.CorrelationStrength,
		NewsImpact:            impact,
		RecommendedStrategy:   strategy,
		KeyMarketMovingEvents: events,
	}
}
