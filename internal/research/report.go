package research

import (
	"fmt"
	"strings"

	"stock-research-agent/internal/agent"
	"stock-research-agent/internal/types"
)

// buildReport assembles the comprehensive report from the direct analyses
// and the agent's final text. An exhausted run is reported as such rather
// than dressed up as a conclusion.
func buildReport(stock *types.StockData, fluctuation, newsSummary, correlation string, result agent.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "RESEARCH REPORT: %s (%s)\n", stock.Name, stock.Symbol)
	fmt.Fprintf(&b, "Current price: $%.2f\n\n", stock.CurrentPrice)

	b.WriteString("PRICE FLUCTUATION ANALYSIS\n")
	b.WriteString(fluctuation)
	b.WriteString("\n\nNEWS SUMMARY\n")
	b.WriteString(newsSummary)
	b.WriteString("\n\nCORRELATION ANALYSIS\n")
	b.WriteString(correlation)

	b.WriteString("\n\nAGENT CONCLUSION\n")
	if result.Outcome == agent.OutcomeExhausted {
		fmt.Fprintf(&b, "The agent did not reach a conclusion within %d iterations.\n", result.Iterations)
	} else {
		b.WriteString(result.FinalText)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "(%d agent iterations)", result.Iterations)

	return b.String()
}
