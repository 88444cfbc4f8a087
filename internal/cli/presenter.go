package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"

	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/format"
	"github.com/agbru/primebench/internal/metrics"
	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/progress"
	"github.com/agbru/primebench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It wraps DisplayProgress to provide a spinner and progress bar
// during the timed executions.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing executions.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numExecutions int, out io.Writer) {
	DisplayProgress(wg, progressChan, numExecutions, out)
}

// CLIColorProvider supplies ANSI colors from the active theme for error
// rendering.
type CLIColorProvider struct{}

// Verify interface compliance.
var _ apperrors.ColorProvider = CLIColorProvider{}

// Red returns the theme's error color.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the theme's warning color.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the ANSI reset sequence.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for benchmark results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays the per-mode comparison table with
// durations, totals and memory cost.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.ModeResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	table := tablewriter.NewWriter(out)
	table.Header("Mode", "Workers", "Duration", "Primes", "Allocated", "Status")

	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		primes := fmt.Sprintf("%d", res.TotalPrimes())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			primes = "-"
		}
		_ = table.Append([]string{
			fmt.Sprintf("%s%s%s", ui.ColorBlue(), res.Name, ui.ColorReset()),
			fmt.Sprintf("%d", res.Workers),
			fmt.Sprintf("%s%s%s", ui.ColorYellow(), displayDuration(res.Duration), ui.ColorReset()),
			primes,
			format.FormatBytes(res.Memory.AllocBytes),
			status,
		})
	}
	_ = table.Render()
}

// PresentSummary displays the totals and the speedup verdict.
func (CLIResultPresenter) PresentSummary(summary orchestration.Summary, out io.Writer) {
	fmt.Fprintf(out, "\nTotal primes found: %s%d%s\n", ui.ColorMagenta(), summary.TotalPrimes, ui.ColorReset())

	if !summary.HasSpeedup {
		return
	}
	fmt.Fprintf(out, "Sequential: %s%s%s   Parallel (%d workers): %s%s%s\n",
		ui.ColorYellow(), displayDuration(summary.SeqDuration), ui.ColorReset(),
		summary.Workers,
		ui.ColorYellow(), displayDuration(summary.ParDuration), ui.ColorReset())

	if !summary.Measurable {
		fmt.Fprintf(out, "Speedup: the parallel run was too short to measure.\n")
		return
	}
	fmt.Fprintf(out, "Speedup: %s%s%s\n", ui.ColorGreen(), format.FormatSpeedup(summary.Speedup), ui.ColorReset())
}

// HandleError handles execution errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleBenchmarkError(err, duration, out, CLIColorProvider{})
}

// displayDuration renders a duration, replacing a zero reading with a
// sub-resolution marker.
func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// DisplayMemoryStats shows runtime memory statistics after a benchmark.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(snap.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
	if snap.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snap.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms (GC disabled)\n")
	}
}
