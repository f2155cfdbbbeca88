package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"stock-analyst/internal/logger"
)

// Headline is one scraped news item.
type Headline struct {
	Title string
	URL   string
}

// NewsScraper scrapes Google News headlines as a keyless fallback for the
// web search tool.
type NewsScraper struct {
	timeout time.Duration
}

func NewNewsScraper(timeout time.Duration) *NewsScraper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &NewsScraper{timeout: timeout}
}

// ScrapeGoogleNews fetches up to maxResults headlines for the query.
func (s *NewsScraper) ScrapeGoogleNews(ctx context.Context, query string, maxResults int) ([]Headline, error) {
	logger.Debug(ctx, "Scraping Google News", "query", query, "max_results", maxResults)

	c := colly.NewCollector(
		colly.AllowedDomains("news.google.com"),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	// Set user agent to avoid being blocked
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	headlines := []Headline{}
	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(headlines) >= maxResults {
			return
		}
		title := strings.TrimSpace(e.ChildText("h3 a, h4 a, a.JtKRv"))
		if title == "" {
			return
		}
		link := e.ChildAttr("h3 a, h4 a, a.JtKRv", "href")
		if strings.HasPrefix(link, "./") {
			link = "https://news.google.com" + link[1:]
		}
		headlines = append(headlines, Headline{Title: title, URL: link})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "News scraping error", err, "url", r.Request.URL.String())
	})

	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en-US", url.QueryEscape(query))
	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", searchURL, err)
	}
	c.Wait()

	logger.Debug(ctx, "Google News scraping completed", "query", query, "headlines", len(headlines))
	return headlines, nil
}
