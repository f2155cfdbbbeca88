package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"stock-analyst/internal/agents"
	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/llm/scripted"
	"stock-analyst/internal/store"
	"stock-analyst/internal/types"
)

func testTeam() *agents.Team {
	return &agents.Team{
		ResearchAnalyst:   &agents.Agent{Role: "Senior Stock Research Analyst"},
		FinancialAnalyst:  &agents.Agent{Role: "Expert Financial Analyst"},
		InvestmentAdvisor: &agents.Agent{Role: "Senior Investment Advisor"},
		MarketStrategist:  &agents.Agent{Role: "Chief Market Strategist"},
	}
}

func testProfile() types.InvestorProfile {
	return types.InvestorProfile{
		Goals:         "long-term growth",
		RiskTolerance: types.RiskModerate,
		Horizon:       types.HorizonLong,
		Amount:        "$10,000",
	}
}

// recordingCompleter captures the order of system prompts it receives.
type recordingCompleter struct {
	calls []string
}

func (r *recordingCompleter) Complete(_ context.Context, req interfaces.CompletionRequest) (string, error) {
	role := req.System
	if i := strings.IndexByte(role, '\n'); i >= 0 {
		role = role[:i]
	}
	r.calls = append(r.calls, role)
	return fmt.Sprintf("output %d from %s", len(r.calls), role), nil
}

// blockingCompleter never returns until its release channel closes.
type blockingCompleter struct {
	release chan struct{}
}

func (b *blockingCompleter) Complete(_ context.Context, _ interfaces.CompletionRequest) (string, error) {
	<-b.release
	return "", errors.New("released")
}

type failingCompleter struct{}

func (failingCompleter) Complete(_ context.Context, _ interfaces.CompletionRequest) (string, error) {
	return "", errors.New("backend unreachable")
}

func TestRunExecutesTasksInOrder(t *testing.T) {
	rec := &recordingCompleter{}
	orch := New(store.DefaultConfig(), rec, testTeam())

	result, err := orch.Run(context.Background(), Request{
		Tickers: []string{"NVDA", "AMD", "INTC"},
		Profile: testProfile(),
		Mode:    types.ModeComprehensive,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	wantOrder := []string{
		"Senior Stock Research Analyst",
		"Expert Financial Analyst",
		"Chief Market Strategist",
		"Senior Investment Advisor",
	}
	if len(rec.calls) != len(wantOrder) {
		t.Fatalf("Expected %d LLM calls, got %d", len(wantOrder), len(rec.calls))
	}
	for i, role := range wantOrder {
		if rec.calls[i] != role {
			t.Errorf("call %d went to %q, want %q", i, rec.calls[i], role)
		}
	}

	if len(result.TaskOutputs) != 4 {
		t.Fatalf("Expected 4 task outputs, got %d", len(result.TaskOutputs))
	}
	if result.Report != result.TaskOutputs[3].Output {
		t.Error("Expected report to be the final task output")
	}
	if result.RunID == "" {
		t.Error("Expected a run ID")
	}
}

func TestRunQuickMode(t *testing.T) {
	rec := &recordingCompleter{}
	orch := New(store.DefaultConfig(), rec, testTeam())

	result, err := orch.Run(context.Background(), Request{
		Tickers: []string{"AAPL"},
		Profile: testProfile(),
		Mode:    types.ModeQuick,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.TaskOutputs) != 2 {
		t.Fatalf("Expected 2 task outputs in quick mode, got %d", len(result.TaskOutputs))
	}
	if result.TaskOutputs[0].Task != "rapid-analysis" || result.TaskOutputs[1].Task != "recommendation" {
		t.Errorf("Unexpected task order: %s, %s", result.TaskOutputs[0].Task, result.TaskOutputs[1].Task)
	}
}

func TestRunTimeoutAbortsAndDiscardsPartials(t *testing.T) {
	block := &blockingCompleter{release: make(chan struct{})}
	defer close(block.release)

	orch := New(store.DefaultConfig(), block, testTeam())

	start := time.Now()
	result, err := orch.Run(context.Background(), Request{
		Tickers: []string{"AAPL"},
		Profile: testProfile(),
		Mode:    types.ModeQuick,
		Timeout: 100 * time.Millisecond,
	})
	elapsed := time.Since(start)

	if result != nil {
		t.Error("Expected no result on timeout")
	}
	var timeoutErr *types.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Expected TimeoutError, got %v", err)
	}
	if timeoutErr.Limit != 100*time.Millisecond {
		t.Errorf("Expected limit 100ms, got %s", timeoutErr.Limit)
	}
	if elapsed > 2*time.Second {
		t.Errorf("Run did not abort promptly: took %s", elapsed)
	}
}

func TestRunWithoutCompleter(t *testing.T) {
	orch := New(store.DefaultConfig(), nil, testTeam())

	_, err := orch.Run(context.Background(), Request{
		Tickers: []string{"AAPL"},
		Profile: testProfile(),
		Mode:    types.ModeQuick,
	})
	var cfgErr *types.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
}

func TestRunRejectsInvalidTickers(t *testing.T) {
	orch := New(store.DefaultConfig(), scripted.New(), testTeam())

	_, err := orch.Run(context.Background(), Request{
		Tickers: []string{"TOOLONG", "BR-K", ""},
		Profile: testProfile(),
		Mode:    types.ModeQuick,
	})
	var cfgErr *types.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError for all-invalid tickers, got %v", err)
	}
}

func TestRunNormalizesTickers(t *testing.T) {
	orch := New(store.DefaultConfig(), scripted.New(), testTeam())

	result, err := orch.Run(context.Background(), Request{
		Tickers: []string{"aapl", "TOOLONG", " msft "},
		Profile: testProfile(),
		Mode:    types.ModeQuick,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Tickers) != 2 || result.Tickers[0] != "AAPL" || result.Tickers[1] != "MSFT" {
		t.Errorf("Expected [AAPL MSFT], got %v", result.Tickers)
	}
}

func TestRunFailingBackend(t *testing.T) {
	orch := New(store.DefaultConfig(), failingCompleter{}, testTeam())

	_, err := orch.Run(context.Background(), Request{
		Tickers: []string{"AAPL"},
		Profile: testProfile(),
		Mode:    types.ModeQuick,
	})
	var svcErr *types.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Expected ExternalServiceError, got %v", err)
	}
	if svcErr.Service != "llm" {
		t.Errorf("Expected service 'llm', got %s", svcErr.Service)
	}
}

func TestRunDeterministicWithScriptedCompleter(t *testing.T) {
	orch := New(store.DefaultConfig(), scripted.New(), testTeam())
	req := Request{
		Tickers: []string{"AAPL", "MSFT"},
		Profile: testProfile(),
		Mode:    types.ModeComprehensive,
	}

	first, err := orch.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("First run returned error: %v", err)
	}
	second, err := orch.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Second run returned error: %v", err)
	}

	if first.Report != second.Report {
		t.Error("Expected identical reports across runs")
	}
	if len(first.TaskOutputs) != len(second.TaskOutputs) {
		t.Fatalf("Expected identical task counts, got %d and %d", len(first.TaskOutputs), len(second.TaskOutputs))
	}
	for i := range first.TaskOutputs {
		if first.TaskOutputs[i] != second.TaskOutputs[i] {
			t.Errorf("Task output %d differs between runs", i)
		}
	}
	if first.RunID == second.RunID {
		t.Error("Expected distinct run IDs")
	}
}

func TestScriptedRunMentionsTickers(t *testing.T) {
	orch := New(store.DefaultConfig(), scripted.New(), testTeam())

	result, err := orch.Run(context.Background(), Request{
		Tickers: []string{"NVDA", "AMD", "INTC"},
		Profile: testProfile(),
		Mode:    types.ModeComprehensive,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(result.Report, "NVDA, AMD, INTC") {
		t.Errorf("Expected report to mention all tickers, got %q", result.Report)
	}
}

func TestEffectiveTimeout(t *testing.T) {
	cfg := store.DefaultConfig()
	orch := New(cfg, scripted.New(), testTeam())

	if d := orch.effectiveTimeout(Request{Mode: types.ModeQuick}); d != 300*time.Second {
		t.Errorf("Expected quick default 300s, got %s", d)
	}
	if d := orch.effectiveTimeout(Request{Mode: types.ModeComprehensive}); d != 600*time.Second {
		t.Errorf("Expected comprehensive default 600s, got %s", d)
	}
	if d := orch.effectiveTimeout(Request{Mode: types.ModeQuick, Timeout: time.Minute}); d != time.Minute {
		t.Errorf("Expected explicit 1m, got %s", d)
	}
	if d := orch.effectiveTimeout(Request{Mode: types.ModeComprehensive, Timeout: -1}); d != 0 {
		t.Errorf("Expected disabled timeout, got %s", d)
	}
}
