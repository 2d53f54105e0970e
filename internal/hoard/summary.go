package hoard

import (
	"fmt"
	"io"
	"time"

	"github.com/dyluth/housie/internal/batch"
	"github.com/olekukonko/tablewriter"
)

// FormatSummary writes a timing table for a finished batch.
func FormatSummary(w io.Writer, report *batch.Report) error {
	fmt.Fprintf(w, "Run %s (%d workers)\n\n", formatID(report.RunID), report.Workers)

	table := tablewriter.NewWriter(w)
	table.Header("GENERATION", "STRIPS", "DURATION", "STRIPS/SEC")

	for _, g := range report.Generations {
		row := []string{
			fmt.Sprintf("%d", g.Generation),
			fmt.Sprintf("%d", g.Strips),
			formatDuration(g.Duration),
			formatRate(g.Strips, g.Duration),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to build summary table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render summary table: %w", err)
	}

	countMsg := "strip"
	if report.Strips() != 1 {
		countMsg = "strips"
	}
	fmt.Fprintf(w, "\n%d %s generated in %s\n", report.Strips(), countMsg, formatDuration(report.Total))
	return nil
}

// VerifyResult is the outcome of validating one record.
type VerifyResult struct {
	Index int // 1-based position of the record in its input
	ID    string
	Seed  uint64
	Error error
}

// Verify validates every record.
func Verify(records []*StripRecord) []VerifyResult {
	results := make([]VerifyResult, 0, len(records))
	for i, r := range records {
		results = append(results, VerifyResult{
			Index: i + 1,
			ID:    r.ID,
			Seed:  r.Seed,
			Error: r.Validate(),
		})
	}
	return results
}

// FormatVerifyResults writes one table row per record and returns how many
// failed validation.
func FormatVerifyResults(w io.Writer, results []VerifyResult) (int, error) {
	table := tablewriter.NewWriter(w)
	table.Header("#", "ID", "SEED", "RESULT")

	failed := 0
	for _, r := range results {
		result := "ok"
		if r.Error != nil {
			failed++
			result = r.Error.Error()
		}
		row := []string{fmt.Sprintf("%d", r.Index), formatID(r.ID), fmt.Sprintf("%d", r.Seed), result}
		if err := table.Append(row); err != nil {
			return failed, fmt.Errorf("failed to build verify table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return failed, fmt.Errorf("failed to render verify table: %w", err)
	}
	return failed, nil
}

// formatDuration renders durations with millisecond precision, falling back
// to microseconds for very fast generations.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func formatRate(strips int, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", float64(strips)/d.Seconds())
}
