// Package orchestrator runs an analysis workflow end to end: ticker
// validation, sequential task execution with append-only context, and a
// single wall-clock timeout covering the whole run.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stock-analyst/internal/agents"
	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/logger"
	"stock-analyst/internal/store"
	"stock-analyst/internal/trace"
	"stock-analyst/internal/types"
	"stock-analyst/internal/workflow"
)

// Request describes one analysis run.
type Request struct {
	Tickers []string
	Profile types.InvestorProfile
	Mode    types.Mode
	// Timeout covers the whole run. Zero picks the configured default
	// (doubled for comprehensive mode); negative disables the deadline.
	Timeout time.Duration
}

// Orchestrator executes workflows against a fixed team and completer.
type Orchestrator struct {
	cfg       *store.Config
	completer interfaces.Completer
	team      *agents.Team
}

func New(cfg *store.Config, completer interfaces.Completer, team *agents.Team) *Orchestrator {
	return &Orchestrator{cfg: cfg, completer: completer, team: team}
}

// Run validates the request and executes its tasks in order. On timeout the
// run aborts and partial outputs are discarded.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*types.RunResult, error) {
	if o.completer == nil {
		return nil, &types.ConfigurationError{
			Reason: "no LLM credential available",
			Remedy: "set GOOGLE_API_KEY, OPENAI_API_KEY, or CLAUDE_API_KEY",
		}
	}
	if err := req.Profile.Validate(); err != nil {
		return nil, &types.ConfigurationError{Reason: err.Error()}
	}

	valid, skipped := types.ValidateTickers(req.Tickers)
	for _, sym := range skipped {
		logger.Warn(ctx, "Skipping invalid ticker", "ticker", sym)
	}
	if len(valid) == 0 {
		return nil, &types.ConfigurationError{
			Reason: "no valid ticker symbols provided",
			Remedy: "symbols must be 1-5 alphanumeric characters, e.g. AAPL",
		}
	}

	timeout := o.effectiveTimeout(req)
	runID := uuid.NewString()

	timer := logger.StartOperation(ctx, "workflow.Run",
		"run_id", runID,
		"mode", string(req.Mode),
		"tickers", fmt.Sprintf("%v", valid),
		"timeout", timeout.String(),
	)
	ctx = timer.GetContext()

	runCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithCancel(ctx)
		defer cancel()
	}

	tasks := workflow.Build(req.Mode, o.team, valid, req.Profile)
	started := time.Now()

	type runOutcome struct {
		outputs []types.TaskOutput
		err     error
	}
	done := make(chan runOutcome, 1)
	go func() {
		outputs, err := o.execute(runCtx, tasks)
		done <- runOutcome{outputs: outputs, err: err}
	}()

	var outcome runOutcome
	if timeout > 0 {
		select {
		case outcome = <-done:
		case <-time.After(timeout):
			cancel()
			err := &types.TimeoutError{Limit: timeout}
			timer.EndWithError(err, "run_id", runID)
			return nil, err
		}
	} else {
		outcome = <-done
	}

	if outcome.err != nil {
		timer.EndWithError(outcome.err, "run_id", runID)
		return nil, outcome.err
	}

	result := &types.RunResult{
		RunID:       runID,
		Mode:        req.Mode,
		Tickers:     valid,
		Report:      outcome.outputs[len(outcome.outputs)-1].Output,
		TaskOutputs: outcome.outputs,
		StartedAt:   started,
		Elapsed:     time.Since(started),
	}
	timer.End("tasks", len(result.TaskOutputs))
	return result, nil
}

// effectiveTimeout resolves the run deadline: explicit request value wins,
// zero falls back to config, negative means no deadline.
func (o *Orchestrator) effectiveTimeout(req Request) time.Duration {
	if req.Timeout != 0 {
		if req.Timeout < 0 {
			return 0
		}
		return req.Timeout
	}
	d := time.Duration(o.cfg.Workflow.DefaultTimeoutSeconds) * time.Second
	if req.Mode == types.ModeComprehensive {
		d *= time.Duration(o.cfg.Workflow.ComprehensiveMultiplier)
	}
	return d
}

// execute runs the tasks strictly in order. Each task's prompt carries every
// prior output plus any pre-gathered tool findings.
func (o *Orchestrator) execute(ctx context.Context, tasks []*workflow.Task) ([]types.TaskOutput, error) {
	outputs := make([]types.TaskOutput, 0, len(tasks))

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		spanCtx, span := trace.StartSpan(ctx, "task."+task.Name)
		findings := o.gatherFindings(spanCtx, task)

		out, err := o.completer.Complete(spanCtx, interfaces.CompletionRequest{
			System: task.Agent.Persona(),
			Prompt: task.Prompt(outputs, findings),
		})
		span.End()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &types.ExternalServiceError{Service: "llm", Err: err}
		}

		logger.TaskCompleted(ctx, task.Name, task.Agent.Role, len(out))
		outputs = append(outputs, types.TaskOutput{
			Task:   task.Name,
			Agent:  task.Agent.Role,
			Output: out,
		})
	}

	return outputs, nil
}

// gatherFindings runs the task's tool queries. Tool failures never abort the
// run; each adapter degrades to descriptive text, and a non-nil error here
// only ever means cancellation, which the task loop picks up.
func (o *Orchestrator) gatherFindings(ctx context.Context, task *workflow.Task) []string {
	if len(task.ToolQueries) == 0 {
		return nil
	}
	findings := make([]string, 0, len(task.ToolQueries))
	for _, q := range task.ToolQueries {
		out, err := q.Tool.Invoke(ctx, q.Input)
		if err != nil {
			logger.Warn(ctx, "Tool query cancelled", "tool", q.Tool.Name(), "error", err)
			return findings
		}
		findings = append(findings, fmt.Sprintf("[%s] %s", q.Tool.Name(), out))
	}
	return findings
}
