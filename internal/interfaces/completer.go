package interfaces

import "context"

// CompletionRequest is one prompt sent to an LLM provider.
type CompletionRequest struct {
	// System conditions the model with an agent persona.
	System string
	// Prompt is the task description plus accumulated run context.
	Prompt string
}

// Completer generates text from a prompt. Implementations wrap a single
// LLM provider and must honor context cancellation.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
