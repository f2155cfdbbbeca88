package scripted

import (
	"context"
	"fmt"
	"strings"

	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/logger"
)

// Completer is a deterministic offline completer used when no LLM provider
// is wanted (smoke runs, tests). Output depends only on the request, so two
// identical runs produce byte-identical text.
type Completer struct{}

func New() *Completer {
	return &Completer{}
}

func (c *Completer) Complete(ctx context.Context, req interfaces.CompletionRequest) (string, error) {
	logger.Debug(ctx, "Scripted completer called", "prompt_chars", len(req.Prompt))

	role := firstLine(req.System)
	if role == "" {
		role = "Analyst"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s]\n", role)
	if stocks := extractField(req.Prompt, "Target Stocks:"); stocks != "" {
		fmt.Fprintf(&sb, "Scripted analysis for %s.\n", stocks)
	}
	if profile := extractField(req.Prompt, "Investor Profile:"); profile != "" {
		fmt.Fprintf(&sb, "Tailored to investor profile: %s.\n", profile)
	}
	sb.WriteString("This is a scripted response produced without an LLM provider. ")
	sb.WriteString("Configure GOOGLE_API_KEY, OPENAI_API_KEY, or CLAUDE_API_KEY for real analysis.")
	return sb.String(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// extractField finds a "Label: value" line in the prompt and returns the value.
func extractField(prompt, label string) string {
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "**")
		if idx := strings.Index(line, label); idx >= 0 {
			value := strings.TrimSpace(line[idx+len(label):])
			value = strings.TrimPrefix(value, "**")
			value = strings.TrimSuffix(value, "**")
			return strings.TrimSpace(value)
		}
	}
	return ""
}
