package interfaces

import "context"

// Tool is a capability an agent can draw on during a task. Adapters absorb
// their own backend failures into descriptive text so a degraded tool lowers
// content quality without aborting the run; the returned error is reserved
// for context cancellation.
type Tool interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, input string) (string, error)
}
