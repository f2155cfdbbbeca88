package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/logger"
	"stock-analyst/internal/store"
	"stock-analyst/internal/trace"
)

// Completer calls the Anthropic Claude Messages API.
type Completer struct {
	cfg      *store.Config
	apiKey   string
	endpoint string
}

func New(cfg *store.Config, apiKey string) *Completer {
	// default messages endpoint (public Anthropic)
	endpoint := "https://api.anthropic.com/v1/messages"
	// For a proxy/bedrock/vertex deployment, set CLAUDE_API_ENDPOINT
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Completer{cfg: cfg, apiKey: apiKey, endpoint: endpoint}
}

func (c *Completer) Complete(ctx context.Context, req interfaces.CompletionRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	if c.apiKey == "" {
		return "", errors.New("CLAUDE_API_KEY missing")
	}

	body := map[string]any{
		"model":  c.cfg.LLM.Model,
		"system": req.System,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
		"max_tokens":  c.cfg.LLM.MaxTokens,
		"temperature": c.cfg.LLM.Temperature,
	}
	bb, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	logger.Debug(ctx, "Claude response received",
		"status_code", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("claude http %d: %s", resp.StatusCode, string(errBody))
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	text, ok := extractText(respBytes)
	if !ok {
		return "", errors.New("no text content in claude response")
	}
	return strings.TrimSpace(text), nil
}

// extractText pulls the assistant text out of a messages-API response,
// tolerating the older response shapes some proxies still emit.
func extractText(respBytes []byte) (string, bool) {
	var r struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBytes, &r); err == nil && len(r.Content) > 0 {
		var sb strings.Builder
		for _, block := range r.Content {
			if block.Type == "" || block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}
		if sb.Len() > 0 {
			return sb.String(), true
		}
	}

	// Fallbacks for proxy response shapes
	var anyResp map[string]any
	if err := json.Unmarshal(respBytes, &anyResp); err != nil {
		return "", false
	}
	for _, k := range []string{"completion", "output", "output_text", "completion_text", "result"} {
		if v, exists := anyResp[k]; exists {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	if choices, ok := anyResp["choices"].([]any); ok && len(choices) > 0 {
		if c0, ok := choices[0].(map[string]any); ok {
			if msg, ok := c0["message"].(map[string]any); ok {
				if s, ok := msg["content"].(string); ok && s != "" {
					return s, true
				}
			}
			if s, ok := c0["text"].(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}
