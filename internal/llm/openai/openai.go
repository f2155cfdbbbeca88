package openai

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

// Completer calls the OpenAI chat completions API.
type Completer struct {
	cfg      *store.Config
	apiKey   string
	endpoint string
}

func New(cfg *store.Config, apiKey string) *Completer {
	endpoint := "https://api.openai.com/v1/chat/completions"
	if ep := os.Getenv("OPENAI_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Completer{cfg: cfg, apiKey: apiKey, endpoint: endpoint}
}

func (c *Completer) Complete(ctx context.Context, req interfaces.CompletionRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	if c.apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	body := map[string]any{
		"model": c.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.Prompt},
		},
		"temperature": c.cfg.LLM.Temperature,
		"max_tokens":  c.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	logger.Debug(ctx, "OpenAI response received",
		"status_code", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	if len(r.Choices) == 0 {
		return "", errors.New("no choices in openai response")
	}

	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
