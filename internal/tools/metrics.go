package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// StockMetrics analyzes basic stock metrics supplied as key=value pairs,
// e.g. "price=100,volume=1000000,market_cap=5000000000,earnings_per_share=4.2".
type StockMetrics struct{}

func NewStockMetrics() *StockMetrics {
	return &StockMetrics{}
}

func (m *StockMetrics) Name() string { return "Stock Price Analysis" }

func (m *StockMetrics) Description() string {
	return "Analyzes basic stock metrics and ratios. " +
		"Input: comma-separated key=value pairs such as price, volume, market_cap, earnings_per_share."
}

func (m *StockMetrics) Invoke(_ context.Context, input string) (string, error) {
	data := map[string]float64{}
	for _, item := range strings.Split(input, ",") {
		key, value, found := strings.Cut(item, "=")
		if !found {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Sprintf("Error: invalid value for %q: %v", strings.TrimSpace(key), err), nil
		}
		data[strings.TrimSpace(key)] = v
	}
	if len(data) == 0 {
		return "Error: no metrics found. Expected comma-separated key=value pairs like price=100,volume=1000000.", nil
	}

	var sb strings.Builder
	sb.WriteString("Stock Metrics Analysis:\n")

	if price, ok := data["price"]; ok {
		fmt.Fprintf(&sb, "- Current Price: $%.2f\n", price)
	}
	if volume, ok := data["volume"]; ok {
		fmt.Fprintf(&sb, "- Trading Volume: %s\n", humanize.Commaf(volume))
	}
	if cap, ok := data["market_cap"]; ok {
		fmt.Fprintf(&sb, "- Market Cap: $%s\n", humanize.Commaf(cap))
	}
	if price, ok := data["price"]; ok {
		if eps, ok := data["earnings_per_share"]; ok && eps > 0 {
			fmt.Fprintf(&sb, "- P/E Ratio: %.2f\n", price/eps)
		}
	}

	return sb.String(), nil
}
