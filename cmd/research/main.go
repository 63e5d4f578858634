package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"stock-research-agent/internal/interfaces"
	"stock-research-agent/internal/llm/gemini"
	"stock-research-agent/internal/llm/llmobs"
	"stock-research-agent/internal/llm/noop"
	"stock-research-agent/internal/llm/openai"
	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/news"
	"stock-research-agent/internal/research"
	"stock-research-agent/internal/stock"
	"stock-research-agent/internal/store"
	"stock-research-agent/internal/types"

	"github.com/joho/godotenv"
)

// One-shot research run: fetches, analyzes and prints the report for a
// single ticker without going through the HTTP server.
func main() {
	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	args := positionalArgs()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: research <ticker> [period] [--json]")
		os.Exit(1)
	}
	ticker := strings.ToUpper(args[0])
	period := ""
	if len(args) > 1 {
		period = args[1]
	}

	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var gateway interfaces.Gateway
	switch cfg.LLM.Provider {
	case "GEMINI":
		gateway = gemini.New(cfg, os.Getenv("GEMINI_API_KEY"))
	case "OPENAI":
		gateway = openai.New(cfg, os.Getenv("OPENAI_API_KEY"))
	default:
		gateway = noop.New(cfg.Agent.CompletionMarker)
	}
	gateway = llmobs.Wrap(gateway)

	newsCfg := news.DefaultServiceConfig()
	newsCfg.APIKey = os.Getenv("NEWSAPI_KEY")
	newsCfg.PageSize = cfg.News.PageSize
	newsCfg.ScrapeFallback = cfg.News.ScrapeFallback

	svc, err := research.NewService(cfg, stock.NewService(), news.NewService(newsCfg), gateway)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build research service: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Researching %s...\n\n", ticker)
	resp, err := svc.Run(context.Background(), types.ResearchRequest{Ticker: ticker, Period: period})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Research failed: %v\n", err)
		os.Exit(1)
	}

	printResponse(resp)

	if hasFlag("--json") {
		saveJSON(resp, ticker+"_research.json")
	}
}

func positionalArgs() []string {
	var args []string
	for _, a := range os.Args[1:] {
		if !strings.HasPrefix(a, "--") {
			args = append(args, a)
		}
	}
	return args
}

func hasFlag(name string) bool {
	for _, a := range os.Args[1:] {
		if a == name {
			return true
		}
	}
	return false
}

func printResponse(resp *types.ResearchResponse) {
	divider := strings.Repeat("=", 80)
	section := strings.Repeat("-", 80)

	fmt.Println(divider)
	fmt.Printf("STOCK RESEARCH RESULTS FOR %s\n", resp.Ticker)
	fmt.Println(divider)

	if resp.StockData != nil {
		fmt.Printf("\nStock: %s (%s)\n", resp.StockData.Name, resp.Ticker)
		fmt.Printf("Current Price: $%.2f\n", resp.StockData.CurrentPrice)
	}

	fmt.Println("\n" + section)
	fmt.Println("PRICE FLUCTUATION ANALYSIS")
	fmt.Println(section)
	fmt.Println(resp.FluctuationAnalysis)

	fmt.Println("\n" + section)
	fmt.Println("NEWS SUMMARY")
	fmt.Println(section)
	fmt.Println(resp.NewsSummary)

	fmt.Println("\n" + section)
	fmt.Println("CORRELATION ANALYSIS")
	fmt.Println(section)
	fmt.Println(resp.CorrelationAnalysis)

	fmt.Println("\n" + section)
	fmt.Println("COMPREHENSIVE REPORT")
	fmt.Println(section)
	fmt.Println(resp.ComprehensiveReport)

	fmt.Println("\n" + divider)
}

func saveJSON(resp *types.ResearchResponse, filename string) {
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create JSON file: %v\n", err)
		return
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write JSON: %v\n", err)
		return
	}
	fmt.Printf("Results saved to %s\n", filename)
}
