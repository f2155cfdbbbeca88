package llmobs

import (
	"context"

	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/logger"
	"stock-analyst/internal/trace"
)

// observableCompleter wraps a Completer with observability (logging & tracing)
type observableCompleter struct {
	completer interfaces.Completer
}

// Compile-time interface check
var _ interfaces.Completer = (*observableCompleter)(nil)

// Wrap wraps a completer with observability middleware
func Wrap(completer interfaces.Completer) interfaces.Completer {
	return &observableCompleter{
		completer: completer,
	}
}

func (oc *observableCompleter) Complete(ctx context.Context, req interfaces.CompletionRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	// Skip(1) so logs report the actual caller, not this middleware
	logger.DebugSkip(ctx, 1, "Requesting completion",
		"system_chars", len(req.System),
		"prompt_chars", len(req.Prompt),
	)

	out, err := oc.completer.Complete(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Completion failed", err,
			"prompt_chars", len(req.Prompt),
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Completion received",
		"output_chars", len(out),
	)

	return out, nil
}
