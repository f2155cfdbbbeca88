package tools

import (
	"context"
	"time"

	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/logger"
	"stock-analyst/internal/store"
	"stock-analyst/internal/tools/toolobs"
)

// Toolset is the capability set computed once at startup. Tools whose
// optional credentials are missing still appear here: they degrade to
// descriptive text when invoked. FilingAvailable tells workflow construction
// whether filing-analysis tasks get real filing access.
type Toolset struct {
	Calculator interfaces.Tool
	Metrics    interfaces.Tool
	Search     interfaces.Tool
	Filing     interfaces.Tool

	FilingAvailable bool
	SearchLive      bool
}

// Available builds the toolset from config and credentials, logging a
// warning for every degraded capability. Missing optional credentials are
// never fatal.
func Available(ctx context.Context, cfg *store.Config, creds *store.Credentials, completer interfaces.Completer) *Toolset {
	scraper := NewNewsScraper(time.Duration(cfg.Tools.ScrapeTimeoutSeconds) * time.Second)
	search := NewWebSearch(creds.SerperAPIKey, cfg.Tools.SearchResults, scraper)
	filing := NewFilingSearch(creds.SECAPIKey, completer, cfg.Tools.FilingChunkChars, cfg.Tools.FilingMaxChunks)

	if creds.SerperAPIKey == "" {
		logger.Warn(ctx, "No SERPER_API_KEY - web search falls back to news scraping")
	}
	if creds.SECAPIKey == "" {
		logger.Warn(ctx, "No SEC_API_API_KEY - comprehensive mode will skip filing analysis")
	}

	return &Toolset{
		Calculator:      toolobs.Wrap(NewCalculator()),
		Metrics:         toolobs.Wrap(NewStockMetrics()),
		Search:          toolobs.Wrap(search),
		Filing:          toolobs.Wrap(filing),
		FilingAvailable: filing.Available(),
		SearchLive:      creds.SerperAPIKey != "",
	}
}

// Base returns the tools every agent carries regardless of credentials.
func (t *Toolset) Base() []interfaces.Tool {
	return []interfaces.Tool{t.Calculator, t.Metrics, t.Search}
}

// WithFiling returns the base tools plus the filing tool when its
// credential is present.
func (t *Toolset) WithFiling() []interfaces.Tool {
	base := t.Base()
	if t.FilingAvailable {
		return append(base, t.Filing)
	}
	return base
}
