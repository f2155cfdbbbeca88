package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM struct {
		Provider    string  `yaml:"provider"` // GEMINI | OPENAI | CLAUDE | SCRIPTED, empty = pick by key
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"llm"`
	Workflow struct {
		DefaultTimeoutSeconds   int `yaml:"default_timeout_seconds"`
		ComprehensiveMultiplier int `yaml:"comprehensive_multiplier"`
	} `yaml:"workflow"`
	Report struct {
		OutputDir           string `yaml:"output_dir"`
		IncludeIntermediate bool   `yaml:"include_intermediate"`
	} `yaml:"report"`
	Tools struct {
		SearchResults        int `yaml:"search_results"`
		ScrapeTimeoutSeconds int `yaml:"scrape_timeout_seconds"`
		FilingChunkChars     int `yaml:"filing_chunk_chars"`
		FilingMaxChunks      int `yaml:"filing_max_chunks"`
	} `yaml:"tools"`
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "", "GEMINI", "OPENAI", "CLAUDE", "SCRIPTED":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be GEMINI, OPENAI, CLAUDE, or SCRIPTED", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0-2, got %.2f", c.LLM.Temperature)
	}
	if c.Workflow.DefaultTimeoutSeconds < 0 {
		return fmt.Errorf("workflow.default_timeout_seconds cannot be negative, got %d", c.Workflow.DefaultTimeoutSeconds)
	}
	if c.Workflow.ComprehensiveMultiplier < 1 {
		return fmt.Errorf("workflow.comprehensive_multiplier must be >= 1, got %d", c.Workflow.ComprehensiveMultiplier)
	}
	return nil
}

// DefaultConfig returns a Config with all defaults applied, usable when no
// config file is present.
func DefaultConfig() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-1.5-pro"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 4096
	}
	if c.Workflow.DefaultTimeoutSeconds == 0 {
		c.Workflow.DefaultTimeoutSeconds = 300
	}
	if c.Workflow.ComprehensiveMultiplier == 0 {
		c.Workflow.ComprehensiveMultiplier = 2
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "analysis"
	}
	if c.Tools.SearchResults == 0 {
		c.Tools.SearchResults = 10
	}
	if c.Tools.ScrapeTimeoutSeconds == 0 {
		c.Tools.ScrapeTimeoutSeconds = 30
	}
	if c.Tools.FilingChunkChars == 0 {
		c.Tools.FilingChunkChars = 8000
	}
	if c.Tools.FilingMaxChunks == 0 {
		c.Tools.FilingMaxChunks = 6
	}
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

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
