package main

import (
	"context"
	"fmt"
	"os"

	"stock-research-agent/internal/interfaces"
	"stock-research-agent/internal/llm/gemini"
	"stock-research-agent/internal/llm/llmobs"
	"stock-research-agent/internal/llm/noop"
	"stock-research-agent/internal/llm/openai"
	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/news"
	"stock-research-agent/internal/research"
	"stock-research-agent/internal/researchlog"
	"stock-research-agent/internal/stock"
	"stock-research-agent/internal/store"
	"stock-research-agent/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses research log files past the retention window.
// The log directory comes from config unless RESEARCH_LOG_DIR overrides it.
func compressOldLogs(ctx context.Context, cfg *store.Config) {
	if os.Getenv("RESEARCH_LOG_DIR") == "" && cfg.ResearchLog.Dir != "" {
		os.Setenv("RESEARCH_LOG_DIR", cfg.ResearchLog.Dir)
	}
	if cfg.ResearchLog.RetentionDays > 0 {
		if err := researchlog.CompressOlder(cfg.ResearchLog.RetentionDays); err != nil {
			logger.Warn(ctx, "Failed to compress old research logs", "error", err)
		}
	}
}

// initializeGateway initializes the model gateway with observability
func initializeGateway(ctx context.Context, cfg *store.Config) interfaces.Gateway {
	var gateway interfaces.Gateway

	switch cfg.LLM.Provider {
	case "GEMINI":
		gateway = gemini.New(cfg, os.Getenv("GEMINI_API_KEY"))
	case "OPENAI":
		gateway = openai.New(cfg, os.Getenv("OPENAI_API_KEY"))
	default:
		gateway = noop.New(cfg.Agent.CompletionMarker)
		logger.Warn(ctx, "No LLM provider configured - using Noop gateway")
	}

	return llmobs.Wrap(gateway)
}

// initializeResearch wires the research service with its data sources
func initializeResearch(cfg *store.Config, gateway interfaces.Gateway) (*research.Service, error) {
	newsCfg := news.DefaultServiceConfig()
	newsCfg.APIKey = os.Getenv("NEWSAPI_KEY")
	newsCfg.PageSize = cfg.News.PageSize
	newsCfg.ScrapeFallback = cfg.News.ScrapeFallback

	return research.NewService(cfg, stock.NewService(), news.NewService(newsCfg), gateway)
}
