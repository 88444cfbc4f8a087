package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/agbru/primebench/internal/config"
	"github.com/agbru/primebench/internal/format"
	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/ui"
)

// WriteReportToFile writes the full benchmark report to a file: a commented
// header describing the run, the per-range counts of the first successful
// mode, and the per-mode timings.
//
// Parameters:
//   - results: The per-mode outcomes.
//   - summary: The cross-mode summary.
//   - cfg: The application configuration, with the worker count resolved.
//   - path: The destination file.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportToFile(results []orchestration.ModeResult, summary orchestration.Summary, cfg config.AppConfig, path string) error {
	if path == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	end := cfg.Base + cfg.Width*int64(cfg.Count)
	fmt.Fprintf(file, "# Prime Counting Benchmark Report\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Interval: [%d, %d)\n", cfg.Base, end)
	fmt.Fprintf(file, "# Ranges: %d x %d\n", cfg.Count, cfg.Width)
	fmt.Fprintf(file, "# Workers: %d\n", cfg.Workers)
	fmt.Fprintf(file, "\n")

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(file, "%s: failed: %v\n", res.Name, res.Err)
			continue
		}
		fmt.Fprintf(file, "%s: %s (%d primes, %s allocated)\n",
			res.Name, res.Duration, res.TotalPrimes(), format.FormatBytes(res.Memory.AllocBytes))
	}

	if counts := firstValidCounts(results); counts != nil {
		fmt.Fprintf(file, "\n# Primes per range\n")
		for i, n := range counts {
			start := cfg.Base + int64(i)*cfg.Width
			fmt.Fprintf(file, "[%d, %d): %d\n", start, start+cfg.Width, n)
		}
	}

	fmt.Fprintf(file, "\nTotal primes: %d\n", summary.TotalPrimes)
	if summary.HasSpeedup {
		if summary.Measurable {
			fmt.Fprintf(file, "Speedup: %s\n", format.FormatSpeedup(summary.Speedup))
		} else {
			fmt.Fprintf(file, "Speedup: not measurable (parallel run too short)\n")
		}
	}
	return nil
}

func firstValidCounts(results []orchestration.ModeResult) []int {
	for _, res := range results {
		if res.Err == nil {
			return res.Counts
		}
	}
	return nil
}

// DisplayRangeCounts prints the per-range prime counts of the first
// successful mode. Shown in verbose mode.
func DisplayRangeCounts(results []orchestration.ModeResult, cfg config.AppConfig, out io.Writer) {
	counts := firstValidCounts(results)
	if counts == nil {
		return
	}
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "\nRange\tPrimes\n")
	for i, n := range counts {
		start := cfg.Base + int64(i)*cfg.Width
		fmt.Fprintf(w, "[%d, %d)\t%d\n", start, start+cfg.Width, n)
	}
	w.Flush()
}

// FormatQuietResult formats the outcome as a single line suitable for
// scripting.
func FormatQuietResult(summary orchestration.Summary) string {
	if !summary.HasSpeedup {
		return fmt.Sprintf("primes=%d", summary.TotalPrimes)
	}
	speedup := "n/a"
	if summary.Measurable {
		speedup = format.FormatSpeedup(summary.Speedup)
	}
	return fmt.Sprintf("primes=%d seq=%s par=%s speedup=%s",
		summary.TotalPrimes, summary.SeqDuration, summary.ParDuration, speedup)
}

// DisplayQuietResult outputs the benchmark outcome in quiet mode.
func DisplayQuietResult(out io.Writer, summary orchestration.Summary) {
	fmt.Fprintln(out, FormatQuietResult(summary))
}

// ConfirmReportWritten tells the user where the report landed. Skipped in
// quiet mode by the caller.
func ConfirmReportWritten(path string, out io.Writer) {
	fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
