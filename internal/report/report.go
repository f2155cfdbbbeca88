// Package report renders and persists analysis run results.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stock-analyst/internal/logger"
	"stock-analyst/internal/types"
)

const timestampLayout = "20060102_150405"

// Format renders the final report text. With includeIntermediate, every
// task's output is appended after the final recommendation.
func Format(result *types.RunResult, profile types.InvestorProfile, includeIntermediate bool) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 70) + "\n")
	fmt.Fprintf(&sb, "STOCK ANALYSIS REPORT (%s)\n", strings.ToUpper(string(result.Mode)))
	sb.WriteString(strings.Repeat("=", 70) + "\n")
	fmt.Fprintf(&sb, "Run ID:    %s\n", result.RunID)
	fmt.Fprintf(&sb, "Stocks:    %s\n", strings.Join(result.Tickers, ", "))
	fmt.Fprintf(&sb, "Generated: %s\n", result.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Elapsed:   %s\n", result.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&sb, "Profile:   %s\n", profile)
	sb.WriteString(strings.Repeat("=", 70) + "\n\n")

	sb.WriteString(result.Report)
	sb.WriteString("\n")

	if includeIntermediate && len(result.TaskOutputs) > 1 {
		sb.WriteString("\n" + strings.Repeat("-", 70) + "\n")
		sb.WriteString("INTERMEDIATE ANALYSIS OUTPUTS\n")
		sb.WriteString(strings.Repeat("-", 70) + "\n")
		for _, out := range result.TaskOutputs[:len(result.TaskOutputs)-1] {
			fmt.Fprintf(&sb, "\n### %s (%s)\n\n%s\n", out.Task, out.Agent, out.Output)
		}
	}

	return sb.String()
}

// Save writes the rendered report to disk. An empty path picks the default
// location under outputDir, named by mode and timestamp. Returns the path
// written.
func Save(ctx context.Context, text string, result *types.RunResult, outputDir, path string) (string, error) {
	if path == "" {
		name := fmt.Sprintf("%s_analysis_%s.txt", result.Mode, result.StartedAt.Format(timestampLayout))
		path = filepath.Join(outputDir, name)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	logger.Info(ctx, "Report saved", "path", path, "bytes", len(text))
	return path, nil
}
