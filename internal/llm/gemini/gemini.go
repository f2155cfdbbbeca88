package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/logger"
	"stock-analyst/internal/store"
	"stock-analyst/internal/trace"
)

// Completer calls the Google Gemini generateContent API.
type Completer struct {
	cfg     *store.Config
	apiKey  string
	baseURL string
}

func New(cfg *store.Config, apiKey string) *Completer {
	baseURL := "https://generativelanguage.googleapis.com/v1beta"
	if ep := os.Getenv("GEMINI_API_ENDPOINT"); ep != "" {
		baseURL = ep
	}
	return &Completer{cfg: cfg, apiKey: apiKey, baseURL: baseURL}
}

func (c *Completer) Complete(ctx context.Context, req interfaces.CompletionRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	if c.apiKey == "" {
		return "", errors.New("GOOGLE_API_KEY missing")
	}

	body := map[string]any{
		"contents": []map[string]any{
			{
				"role":  "user",
				"parts": []map[string]string{{"text": req.Prompt}},
			},
		},
		"systemInstruction": map[string]any{
			"parts": []map[string]string{{"text": req.System}},
		},
		"generationConfig": map[string]any{
			"temperature":     c.cfg.LLM.Temperature,
			"maxOutputTokens": c.cfg.LLM.MaxTokens,
		},
	}
	bb, _ := json.Marshal(body)

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.cfg.LLM.Model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	logger.Debug(ctx, "Gemini response received",
		"status_code", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini http %d", resp.StatusCode)
	}

	var r struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	if len(r.Candidates) == 0 {
		return "", errors.New("no candidates in gemini response")
	}

	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", errors.New("empty gemini candidate content")
	}
	return strings.TrimSpace(sb.String()), nil
}
