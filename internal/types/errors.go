package types

import (
	"fmt"
	"time"
)

// ConfigurationError means a required credential or setting is missing.
// It aborts the run before any task executes.
type ConfigurationError struct {
	Reason string
	Remedy string
}

func (e *ConfigurationError) Error() string {
	if e.Remedy != "" {
		return fmt.Sprintf("configuration error: %s (%s)", e.Reason, e.Remedy)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// TimeoutError means the whole workflow exceeded its wall-clock deadline.
// Partial results are discarded.
type TimeoutError struct {
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("workflow timed out after %s", e.Limit)
}

// ExternalServiceError means an LLM or tool backend failed for a reason
// other than a missing credential. It aborts the run.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// ToolUnavailableError is soft: adapters catch it themselves and degrade to
// descriptive text instead of propagating it. It exists so adapter internals
// can signal the condition uniformly.
type ToolUnavailableError struct {
	Tool   string
	Reason string
}

func (e *ToolUnavailableError) Error() string {
	return fmt.Sprintf("tool %s unavailable: %s", e.Tool, e.Reason)
}
