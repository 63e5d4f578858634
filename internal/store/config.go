package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	LLM struct {
		Provider       string  `yaml:"provider"` // GEMINI, OPENAI or NOOP
		Model          string  `yaml:"model"`
		MaxTokens      int     `yaml:"max_tokens"`
		Temperature    float32 `yaml:"temperature"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"llm"`
	Agent struct {
		MaxIterations      int    `yaml:"max_iterations"`
		FunctionCallMarker string `yaml:"function_call_marker"`
		CompletionMarker   string `yaml:"completion_marker"`
	} `yaml:"agent"`
	Stock struct {
		Period string `yaml:"period"` // 1d, 1wk, 1mo
	} `yaml:"stock"`
	News struct {
		Days           int  `yaml:"days"`
		PageSize       int  `yaml:"page_size"`
		ScrapeFallback bool `yaml:"scrape_fallback"`
	} `yaml:"news"`
	ResearchLog struct {
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"research_log"`
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "GEMINI", "OPENAI", "NOOP":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'GEMINI', 'OPENAI' or 'NOOP'", c.LLM.Provider)
	}
	if c.Agent.MaxIterations <= 0 {
		return fmt.Errorf("agent.max_iterations must be positive, got %d", c.Agent.MaxIterations)
	}
	if c.Agent.CompletionMarker == "" {
		return fmt.Errorf("agent.completion_marker cannot be empty")
	}
	if c.Agent.FunctionCallMarker == "" {
		return fmt.Errorf("agent.function_call_marker cannot be empty")
	}
	if c.News.Days <= 0 || c.News.Days > 30 {
		return fmt.Errorf("news.days must be between 1-30, got %d", c.News.Days)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.Agent.MaxIterations == 0 {
		c.Agent.MaxIterations = 5
	}
	if c.Agent.FunctionCallMarker == "" {
		c.Agent.FunctionCallMarker = "FUNCTION_CALL:"
	}
	if c.Agent.CompletionMarker == "" {
		c.Agent.CompletionMarker = "FINAL_ANALYSIS"
	}
	if c.Stock.Period == "" {
		c.Stock.Period = "1wk"
	}
	if c.News.Days == 0 {
		c.News.Days = 7
	}
	if c.News.PageSize == 0 {
		c.News.PageSize = 25
	}
	if c.ResearchLog.Dir == "" {
		c.ResearchLog.Dir = "logs"
	}
}
