package analysis

import (
	"encoding/json"
	"fmt"

	"stock-research-agent/internal/types"
)

// ExtremeMove identifies the single day with the largest gain or loss
type ExtremeMove struct {
	Date    string  `json:"date"`
	Percent float64 `json:"percent"`
	Price   float64 `json:"price"`
}

// PriceAnalysis summarizes a daily change series
type PriceAnalysis struct {
	Ticker             string      `json:"ticker"`
	CompanyName        string      `json:"company_name"`
	CurrentPrice       float64     `json:"current_price"`
	AnalysisPeriod     string      `json:"analysis_period"`
	AverageDailyChange float64     `json:"average_daily_change"`
	UpDays             int         `json:"up_days"`
	DownDays           int         `json:"down_days"`
	MaxGain            ExtremeMove `json:"max_gain"`
	MaxLoss            ExtremeMove `json:"max_loss"`
}

// AnalyzePriceData computes summary statistics over a stock's daily change
// series. The payload is the JSON encoding of types.StockData. Days with a
// zero percent change count as neither up nor down. Ties for max gain or
// loss resolve to the first occurrence in input order, and the analysis
// period label uses the first and last records as given (not sorted).
func AnalyzePriceData(payload string) any {
	var data types.StockData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return errorResult(fmt.Sprintf("invalid price data payload: %v", err))
	}

	changes := data.DailyChanges
	if len(changes) == 0 {
		return errorResult("No daily price changes found in data")
	}

	var total float64
	upDays, downDays := 0, 0
	maxGain, maxLoss := changes[0], changes[0]

	for _, change := range changes {
		total += change.PercentChange
		if change.PercentChange > 0 {
			upDays++
		} else if change.PercentChange < 0 {
			downDays++
		}

		// Strict comparison keeps the first occurrence on ties
		if change.PercentChange > maxGain.PercentChange {
			maxGain = change
		}
		if change.PercentChange < maxLoss.PercentChange {
			maxLoss = change
		}
	}

	name := data.Name
	if name == "" {
		name = "Unknown"
	}
	ticker := data.Symbol
	if ticker == "" {
		ticker = "Unknown"
	}

	return PriceAnalysis{
		Ticker:             ticker,
		CompanyName:        name,
		CurrentPrice:       data.CurrentPrice,
		AnalysisPeriod:     fmt.Sprintf("%s to %s", changes[0].Date, changes[len(changes)-1].Date),
		AverageDailyChange: total / float64(len(changes)),
		UpDays:             upDays,
		DownDays:           downDays,
		MaxGain:            ExtremeMove{Date: maxGain.Date, Percent: maxGain.PercentChange, Price: maxGain.Close},
		MaxLoss:            ExtremeMove{Date: maxLoss.Date, Percent: maxLoss.PercentChange, Price: maxLoss.Close},
	}
}
