package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stock-analyst/internal/logger"
	"stock-analyst/internal/trace"
)

const serperEndpoint = "https://google.serper.dev/search"

// WebSearch runs web searches for the agents. With a Serper API key it calls
// the Serper search API; without one it falls back to scraping Google News.
// With neither path working it returns descriptive unavailable text.
type WebSearch struct {
	apiKey     string
	numResults int
	scraper    *NewsScraper
}

func NewWebSearch(apiKey string, numResults int, scraper *NewsScraper) *WebSearch {
	if numResults <= 0 {
		numResults = 10
	}
	return &WebSearch{apiKey: apiKey, numResults: numResults, scraper: scraper}
}

func (w *WebSearch) Name() string { return "Web Search" }

func (w *WebSearch) Description() string {
	return "Searches the web for recent news, market data, and analyst coverage. " +
		"Input: a search query string."
}

// Available reports whether the tool has a live backend (key or scraper).
func (w *WebSearch) Available() bool {
	return w.apiKey != "" || w.scraper != nil
}

func (w *WebSearch) Invoke(ctx context.Context, input string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "tool.websearch")
	defer span.End()

	query := strings.TrimSpace(input)
	if query == "" {
		return "Error: empty search query", nil
	}

	if w.apiKey != "" {
		results, err := w.serperSearch(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			logger.Warn(ctx, "Serper search failed, continuing without results", "error", err, "query", query)
			return fmt.Sprintf("Web search unavailable for %q: %v. Reason around this gap using your own knowledge.", query, err), nil
		}
		return results, nil
	}

	if w.scraper != nil {
		headlines, err := w.scraper.ScrapeGoogleNews(ctx, query, w.numResults)
		if err != nil || len(headlines) == 0 {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return fmt.Sprintf("Web search unavailable for %q: no SERPER_API_KEY and news scraping returned nothing.", query), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "News headlines for %q:\n", query)
		for i, h := range headlines {
			fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, h.Title, h.URL)
		}
		return sb.String(), nil
	}

	return "Web search tool is unavailable: SERPER_API_KEY not configured. Proceed with your own knowledge.", nil
}

func (w *WebSearch) serperSearch(ctx context.Context, query string) (string, error) {
	body, _ := json.Marshal(map[string]any{"q": query, "num": w.numResults})

	req, err := http.NewRequestWithContext(ctx, "POST", serperEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-API-KEY", w.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	logger.Debug(ctx, "Serper response received",
		"status_code", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("serper http %d", resp.StatusCode)
	}

	var r serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}
	return formatSerperResults(query, r), nil
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
	AnswerBox struct {
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
	} `json:"answerBox"`
}

func formatSerperResults(query string, r serperResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search results for %q:\n", query)

	if r.AnswerBox.Answer != "" {
		fmt.Fprintf(&sb, "Answer: %s\n", r.AnswerBox.Answer)
	} else if r.AnswerBox.Snippet != "" {
		fmt.Fprintf(&sb, "Answer: %s\n", r.AnswerBox.Snippet)
	}

	if len(r.Organic) == 0 {
		sb.WriteString("No results found.\n")
		return sb.String()
	}
	for i, item := range r.Organic {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n   %s\n", i+1, item.Title, item.Snippet, item.Link)
	}
	return sb.String()
}
