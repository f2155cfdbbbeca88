package toolobs

import (
	"context"

	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/logger"
	"stock-analyst/internal/trace"
)

// observableTool wraps a Tool with observability (logging & tracing)
type observableTool struct {
	tool interfaces.Tool
}

// Compile-time interface check
var _ interfaces.Tool = (*observableTool)(nil)

// Wrap wraps a tool with observability middleware
func Wrap(tool interfaces.Tool) interfaces.Tool {
	return &observableTool{tool: tool}
}

func (ot *observableTool) Name() string        { return ot.tool.Name() }
func (ot *observableTool) Description() string { return ot.tool.Description() }

func (ot *observableTool) Invoke(ctx context.Context, input string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "tool.Invoke")
	defer span.End()

	// Skip(1) so logs report the actual caller, not this middleware
	logger.DebugSkip(ctx, 1, "Invoking tool",
		"tool", ot.tool.Name(),
		"input_chars", len(input),
	)

	out, err := ot.tool.Invoke(ctx, input)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Tool invocation aborted", err,
			"tool", ot.tool.Name(),
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Tool result received",
		"tool", ot.tool.Name(),
		"output_chars", len(out),
	)

	return out, nil
}
