package tools

import (
	"context"
	"strings"
	"testing"
)

func TestWebSearchDegradesWithoutBackend(t *testing.T) {
	search := NewWebSearch("", 10, nil)

	if search.Available() {
		t.Error("Expected search without key or scraper to be unavailable")
	}

	out, err := search.Invoke(context.Background(), "AAPL earnings")
	if err != nil {
		t.Fatalf("Expected degraded text, got error: %v", err)
	}
	if !strings.Contains(out, "unavailable") {
		t.Errorf("Expected unavailable message, got %q", out)
	}
}

func TestWebSearchEmptyQuery(t *testing.T) {
	search := NewWebSearch("key", 10, nil)

	out, err := search.Invoke(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Expected soft error, got %v", err)
	}
	if !strings.HasPrefix(out, "Error:") {
		t.Errorf("Expected an Error: result, got %q", out)
	}
}

func TestFormatSerperResults(t *testing.T) {
	var r serperResponse
	r.AnswerBox.Answer = "$3.2 trillion"
	r.Organic = []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	}{
		{Title: "Apple market cap", Link: "https://example.com/1", Snippet: "Apple reaches new high"},
	}

	out := formatSerperResults("AAPL market cap", r)
	if !strings.Contains(out, "Answer: $3.2 trillion") {
		t.Errorf("Expected answer box line, got %q", out)
	}
	if !strings.Contains(out, "1. Apple market cap") {
		t.Errorf("Expected numbered result, got %q", out)
	}
}

func TestFormatSerperResultsEmpty(t *testing.T) {
	out := formatSerperResults("obscure query", serperResponse{})
	if !strings.Contains(out, "No results found") {
		t.Errorf("Expected no-results message, got %q", out)
	}
}

func TestFilingSearchDegradesWithoutKey(t *testing.T) {
	filing := NewFilingSearch("", nil, 0, 0)

	if filing.Available() {
		t.Error("Expected filing search without key to be unavailable")
	}

	out, err := filing.Invoke(context.Background(), "AAPL 10-K risk factors")
	if err != nil {
		t.Fatalf("Expected degraded text, got error: %v", err)
	}
	if !strings.Contains(out, "SEC_API_API_KEY") {
		t.Errorf("Expected unavailable message naming the credential, got %q", out)
	}
}

func TestParseFilingInput(t *testing.T) {
	ticker, form, query, err := parseFilingInput("aapl 10-k what are the main risk factors")
	if err != nil {
		t.Fatalf("Expected valid parse, got %v", err)
	}
	if ticker != "AAPL" {
		t.Errorf("Expected ticker AAPL, got %s", ticker)
	}
	if form != "10-K" {
		t.Errorf("Expected form 10-K, got %s", form)
	}
	if query != "what are the main risk factors" {
		t.Errorf("Unexpected query: %q", query)
	}

	if _, _, _, err := parseFilingInput("AAPL 8-K something"); err == nil {
		t.Error("Expected error for unsupported form type")
	}
	if _, _, _, err := parseFilingInput("AAPL"); err == nil {
		t.Error("Expected error for missing fields")
	}
}

func TestChunkTextBreaksOnSpaces(t *testing.T) {
	text := strings.Repeat("word ", 100)
	chunks := chunkText(text, 80)

	if len(chunks) < 5 {
		t.Fatalf("Expected several chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 80 {
			t.Errorf("Chunk %d exceeds size: %d chars", i, len(c))
		}
	}
}

func TestRankChunksOrdersByRelevance(t *testing.T) {
	chunks := []string{
		"unrelated content about weather patterns",
		"revenue grew and revenue margins improved with revenue up",
		"revenue was flat",
	}

	ranked := rankChunks(chunks, "revenue margins", 2)
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 ranked chunks, got %d", len(ranked))
	}
	if !strings.Contains(ranked[0], "revenue grew") {
		t.Errorf("Expected most relevant chunk first, got %q", ranked[0])
	}
}
