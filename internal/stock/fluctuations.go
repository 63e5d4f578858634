package stock

import (
	"fmt"
	"strings"

	"stock-research-agent/internal/types"
)

// AnalyzeFluctuations renders a plain-text report of the price movements
// in a stock's daily change series
func AnalyzeFluctuations(stock *types.StockData) string {
	if stock == nil || len(stock.DailyChanges) == 0 {
		return "Insufficient data to analyze fluctuations."
	}

	changes := stock.DailyChanges
	maxGain, maxLoss := changes[0], changes[0]
	var total float64
	for _, c := range changes {
		total += c.PercentChange
		if c.PercentChange > maxGain.PercentChange {
			maxGain = c
		}
		if c.PercentChange < maxLoss.PercentChange {
			maxLoss = c
		}
	}
	avg := total / float64(len(changes))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Stock: %s (%s)\n", stock.Name, stock.Symbol)
	fmt.Fprintf(&sb, "Sector: %s, Industry: %s\n", stock.Sector, stock.Industry)
	fmt.Fprintf(&sb, "Current Price: $%.2f\n\n", stock.CurrentPrice)
	fmt.Fprintf(&sb, "Analysis Period: %s to %s\n", changes[0].Date, changes[len(changes)-1].Date)
	fmt.Fprintf(&sb, "Average Daily Change: %.2f%%\n", avg)
	fmt.Fprintf(&sb, "Biggest Gain: %.2f%% on %s\n", maxGain.PercentChange, maxGain.Date)
	fmt.Fprintf(&sb, "Biggest Loss: %.2f%% on %s\n\n", maxLoss.PercentChange, maxLoss.Date)

	sb.WriteString("Daily Changes:\n")
	for _, c := range changes {
		direction := "↓"
		if c.PercentChange > 0 {
			direction = "↑"
		}
		fmt.Fprintf(&sb, "%s: %.2f%% %s ($%.2f)\n", c.Date, c.PercentChange, direction, c.Close)
	}

	return sb.String()
}
