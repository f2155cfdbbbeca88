package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/logger"
	"stock-analyst/internal/trace"
)

const secQueryEndpoint = "https://api.sec-api.io"

var whitespaceRE = regexp.MustCompile(`\s+`)

// FilingSearch looks up a company's latest 10-K or 10-Q filing via the
// sec-api.io query API, extracts its text, and answers a question against
// the most relevant chunks. Without a SEC_API_API_KEY it degrades to
// descriptive unavailable text instead of failing the run.
type FilingSearch struct {
	apiKey     string
	completer  interfaces.Completer // optional; nil falls back to excerpt output
	chunkChars int
	maxChunks  int
}

func NewFilingSearch(apiKey string, completer interfaces.Completer, chunkChars, maxChunks int) *FilingSearch {
	if chunkChars <= 0 {
		chunkChars = 8000
	}
	if maxChunks <= 0 {
		maxChunks = 6
	}
	return &FilingSearch{apiKey: apiKey, completer: completer, chunkChars: chunkChars, maxChunks: maxChunks}
}

func (f *FilingSearch) Name() string { return "SEC Filing Search" }

func (f *FilingSearch) Description() string {
	return "Searches a company's latest 10-K or 10-Q SEC filing. " +
		"Input: '<TICKER> <10-K|10-Q> <question>', e.g. 'AAPL 10-K what are the main risk factors'."
}

// Available reports whether the SEC credential is configured.
func (f *FilingSearch) Available() bool { return f.apiKey != "" }

func (f *FilingSearch) Invoke(ctx context.Context, input string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "tool.filing")
	defer span.End()

	if f.apiKey == "" {
		return "SEC filing search is unavailable: SEC_API_API_KEY not configured. " +
			"Skip filing analysis and note the gap in your report.", nil
	}

	ticker, formType, query, err := parseFilingInput(input)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	text, filingURL, err := f.fetchFilingText(ctx, ticker, formType)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Warn(ctx, "Filing retrieval failed, degrading", "ticker", ticker, "form", formType, "error", err)
		return fmt.Sprintf("Could not retrieve %s %s filing: %v. Proceed without filing data.", ticker, formType, err), nil
	}

	chunks := chunkText(text, f.chunkChars)
	relevant := rankChunks(chunks, query, f.maxChunks)
	if len(relevant) == 0 {
		return fmt.Sprintf("No relevant information found in %s's latest %s filing for %q.", ticker, formType, query), nil
	}

	if f.completer != nil {
		answer, err := f.summarize(ctx, ticker, formType, query, relevant)
		if err == nil {
			return answer, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Warn(ctx, "Filing summarization failed, returning raw excerpt", "ticker", ticker, "error", err)
	}

	excerpt := relevant[0]
	if len(excerpt) > 2000 {
		excerpt = excerpt[:2000] + "..."
	}
	return fmt.Sprintf("Excerpt from %s's latest %s (%s) relevant to %q:\n%s", ticker, formType, filingURL, query, excerpt), nil
}

func parseFilingInput(input string) (ticker, formType, query string, err error) {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) < 3 {
		return "", "", "", fmt.Errorf("input must be '<TICKER> <10-K|10-Q> <question>'")
	}
	ticker = strings.ToUpper(fields[0])
	formType = strings.ToUpper(fields[1])
	if formType != "10-K" && formType != "10-Q" {
		return "", "", "", fmt.Errorf("form type must be 10-K or 10-Q, got %q", fields[1])
	}
	return ticker, formType, strings.Join(fields[2:], " "), nil
}

// fetchFilingText finds the latest filing of the given type and returns its
// plain text plus the filing URL.
func (f *FilingSearch) fetchFilingText(ctx context.Context, ticker, formType string) (string, string, error) {
	query := map[string]any{
		"query": map[string]any{
			"query_string": map[string]any{
				"query": fmt.Sprintf("ticker:%s AND formType:%q", ticker, formType),
			},
		},
		"from": "0",
		"size": "1",
		"sort": []map[string]any{{"filedAt": map[string]string{"order": "desc"}}},
	}
	qb, _ := json.Marshal(query)

	req, err := http.NewRequestWithContext(ctx, "POST", secQueryEndpoint, bytes.NewReader(qb))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("sec-api http %d", resp.StatusCode)
	}

	var r struct {
		Filings []struct {
			LinkToFilingDetails string `json:"linkToFilingDetails"`
		} `json:"filings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", "", err
	}
	if len(r.Filings) == 0 {
		return "", "", fmt.Errorf("no %s filings found for %s", formType, ticker)
	}
	filingURL := r.Filings[0].LinkToFilingDetails

	text, err := f.fetchDocumentText(ctx, filingURL)
	if err != nil {
		return "", "", err
	}
	return text, filingURL, nil
}

// fetchDocumentText downloads the filing and strips it to plain text.
func (f *FilingSearch) fetchDocumentText(ctx context.Context, docURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", docURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Investment Analysis Tool contact@example.com")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("filing fetch http %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	text := whitespaceRE.ReplaceAllString(doc.Text(), " ")

	logger.Debug(ctx, "Filing document processed",
		"url", docURL,
		"chars", len(text),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return strings.TrimSpace(text), nil
}

func chunkText(text string, size int) []string {
	var chunks []string
	for len(text) > size {
		// Prefer a break on a space near the boundary
		cut := size
		if idx := strings.LastIndexByte(text[:size], ' '); idx > size/2 {
			cut = idx
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if strings.TrimSpace(text) != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// rankChunks orders chunks by query-term hit count and keeps the top n.
func rankChunks(chunks []string, query string, n int) []string {
	terms := strings.Fields(strings.ToLower(query))
	type scored struct {
		idx   int
		score int
	}
	var matches []scored
	for i, chunk := range chunks {
		lc := strings.ToLower(chunk)
		score := 0
		for _, t := range terms {
			if len(t) < 3 {
				continue
			}
			score += strings.Count(lc, t)
		}
		if score > 0 {
			matches = append(matches, scored{idx: i, score: score})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool { return matches[a].score > matches[b].score })
	if len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, chunks[m.idx])
	}
	return out
}

func (f *FilingSearch) summarize(ctx context.Context, ticker, formType, query string, chunks []string) (string, error) {
	prompt := fmt.Sprintf(
		"Answer the question using only the filing excerpts below.\n\nQuestion about %s's latest %s: %s\n\nExcerpts:\n%s",
		ticker, formType, query, strings.Join(chunks, "\n---\n"))
	return f.completer.Complete(ctx, interfaces.CompletionRequest{
		System: "You extract precise facts from SEC filings. Answer concisely and cite figures where present.",
		Prompt: prompt,
	})
}
