package tools

import (
	"context"
	"strings"
	"testing"
)

func TestStockMetricsAnalysis(t *testing.T) {
	m := NewStockMetrics()

	out, err := m.Invoke(context.Background(), "price=150.50,volume=2500000,market_cap=2400000000000,earnings_per_share=6.02")
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}

	if !strings.Contains(out, "Current Price: $150.50") {
		t.Errorf("Expected price line, got %q", out)
	}
	if !strings.Contains(out, "Trading Volume: 2,500,000") {
		t.Errorf("Expected humanized volume, got %q", out)
	}
	if !strings.Contains(out, "P/E Ratio: 25.00") {
		t.Errorf("Expected P/E ratio 25.00, got %q", out)
	}
}

func TestStockMetricsSkipsPEWithoutEarnings(t *testing.T) {
	m := NewStockMetrics()

	out, err := m.Invoke(context.Background(), "price=100")
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if strings.Contains(out, "P/E") {
		t.Errorf("Expected no P/E line without earnings_per_share, got %q", out)
	}
}

func TestStockMetricsBadInput(t *testing.T) {
	m := NewStockMetrics()
	ctx := context.Background()

	out, err := m.Invoke(ctx, "price=abc")
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if !strings.HasPrefix(out, "Error:") {
		t.Errorf("Expected an Error: result for bad value, got %q", out)
	}

	out, err = m.Invoke(ctx, "just some words")
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if !strings.HasPrefix(out, "Error:") {
		t.Errorf("Expected an Error: result for missing pairs, got %q", out)
	}
}
