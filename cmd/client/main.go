package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"stock-research-agent/internal/api"
	"stock-research-agent/internal/types"
)

// Interactive client for a running research server. Prompts for a ticker,
// posts the research request and saves the response alongside printing it.
func main() {
	baseURL := os.Getenv("RESEARCH_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	fmt.Println("Stock Research Client")
	fmt.Println("---------------------")

	ticker := readTicker()
	if ticker == "" {
		fmt.Println("Invalid ticker symbol")
		os.Exit(1)
	}

	client := api.NewClient(
		api.WithBaseURL(baseURL),
		api.WithTimeout(5*time.Minute),
	)

	fmt.Printf("\nFetching research for %s...\n", ticker)

	ctx := context.Background()
	resp, err := client.POST(ctx, "/api/stock-research/research", types.ResearchRequest{Ticker: ticker})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}

	var result types.ResearchResponse
	if err := resp.ParseJSON(&result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %d - %s\n", resp.StatusCode, resp.String())
		os.Exit(1)
	}

	display(&result)

	filename := ticker + "_research.json"
	if err := save(&result, filename); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Research results saved to %s\n", filename)
}

func readTicker() string {
	fmt.Print("Enter stock ticker symbol: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(line))
}

func display(result *types.ResearchResponse) {
	if result.Status == "error" {
		fmt.Printf("Error: %s\n", result.Error)
		return
	}

	divider := strings.Repeat("=", 80)
	section := strings.Repeat("-", 80)

	fmt.Println("\n" + divider)
	fmt.Printf("STOCK RESEARCH RESULTS FOR %s\n", result.Ticker)
	fmt.Println(divider)

	if result.StockData != nil {
		fmt.Printf("\nStock: %s (%s)\n", result.StockData.Name, result.Ticker)
		fmt.Printf("Current Price: $%.2f\n", result.StockData.CurrentPrice)
		if result.StockData.Sector != "" {
			fmt.Printf("Sector: %s\n", result.StockData.Sector)
		}
		if result.StockData.Industry != "" {
			fmt.Printf("Industry: %s\n", result.StockData.Industry)
		}
	}

	for _, part := range []struct {
		title, body string
	}{
		{"PRICE FLUCTUATION ANALYSIS", result.FluctuationAnalysis},
		{"NEWS SUMMARY", result.NewsSummary},
		{"CORRELATION ANALYSIS", result.CorrelationAnalysis},
		{"COMPREHENSIVE REPORT", result.ComprehensiveReport},
	} {
		fmt.Println("\n" + section)
		fmt.Println(part.title)
		fmt.Println(section)
		if part.body == "" {
			fmt.Println("No analysis available")
		} else {
			fmt.Println(part.body)
		}
	}

	fmt.Println("\n" + divider + "\n")
}

func save(result *types.ResearchResponse, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
