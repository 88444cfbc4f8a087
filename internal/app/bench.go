package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/primebench/internal/cli"
	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/logging"
	"github.com/agbru/primebench/internal/metrics"
	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/prime"
	"github.com/agbru/primebench/internal/sysmon"
	"github.com/agbru/primebench/internal/workload"
)

// sysmonInterval is the sampling period of the resource watcher.
const sysmonInterval = 500 * time.Millisecond

// runBench orchestrates the execution of the CLI benchmark command.
func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	ranges, err := workload.Partition(a.Config.Base, a.Config.Width, a.Config.Count)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Invalid workload: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	items := workload.Items(ranges)

	schedulersToRun := orchestration.GetSchedulersToRun(a.Config.Mode, a.Factory)

	a.Logger.Debug("benchmark configured",
		logging.Int64("base", a.Config.Base),
		logging.Int64("width", a.Config.Width),
		logging.Int("count", a.Config.Count),
		logging.Int("workers", a.Config.Workers),
		logging.Int("modes", len(schedulersToRun)))

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(schedulersToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	var bm *metrics.BenchmarkMetrics
	if a.Config.MetricsFile != "" {
		bm = metrics.NewBenchmarkMetrics()
	}

	var watcher *sysmon.Watcher
	if a.Config.Verbose {
		watcher = sysmon.NewWatcher(sysmonInterval)
		watcher.Start(ctx)
	}

	results := orchestration.ExecuteBenchmark(ctx, schedulersToRun, items, prime.CountInRange,
		progressReporter, progressOut, orchestration.BenchmarkOptions{Metrics: bm})

	if watcher != nil {
		peak := watcher.Stop()
		fmt.Fprintf(out, "Peak system load: CPU %.1f%%, memory %.1f%%\n", peak.CPUPercent, peak.MemPercent)
	}

	return a.analyzeResultsWithOutput(results, bm, out)
}

// analyzeResultsWithOutput runs the cross-mode analysis and handles the
// quiet, report-file, and metrics-file output paths.
func (a *Application) analyzeResultsWithOutput(results []orchestration.ModeResult, bm *metrics.BenchmarkMetrics, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}

	analysisOut := out
	if a.Config.Quiet {
		analysisOut = io.Discard
	}
	exitCode := orchestration.AnalyzeBenchmarkResults(results, presenter, presenter, analysisOut)

	if a.Config.Quiet {
		switch {
		case exitCode == apperrors.ExitSuccess:
			cli.DisplayQuietResult(out, orchestration.BuildSummary(results))
		case exitCode == apperrors.ExitErrorMismatch:
			fmt.Fprintln(a.ErrWriter, "Error: the execution modes disagree on the prime counts")
		default:
			if err := firstError(results); err != nil {
				presenter.HandleError(err, 0, a.ErrWriter)
			}
		}
	}

	if bm != nil {
		summary := orchestration.BuildSummary(results)
		bm.SetWorkerCount(summary.Workers)
		if summary.Measurable {
			bm.SetSpeedup(summary.Speedup)
		}
	}
	if err := a.writeMetricsIfNeeded(bm); err != nil {
		fmt.Fprintf(a.ErrWriter, "Warning: could not write metrics: %v\n", err)
	}

	if a.Config.OutputFile != "" && exitCode == apperrors.ExitSuccess {
		summary := orchestration.BuildSummary(results)
		if err := cli.WriteReportToFile(results, summary, a.Config, a.Config.OutputFile); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			cli.ConfirmReportWritten(a.Config.OutputFile, out)
		}
	}

	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayRangeCounts(results, a.Config, out)
		var collector metrics.MemoryCollector
		cli.DisplayMemoryStats(collector.Snapshot(), out)
	}

	return exitCode
}

// firstError returns the first per-mode error, or nil.
func firstError(results []orchestration.ModeResult) error {
	for i := range results {
		if results[i].Err != nil {
			return results[i].Err
		}
	}
	return nil
}

// writeMetricsIfNeeded dumps the Prometheus registry in text exposition
// format to the configured file.
func (a *Application) writeMetricsIfNeeded(bm *metrics.BenchmarkMetrics) error {
	if bm == nil || a.Config.MetricsFile == "" {
		return nil
	}
	f, err := os.Create(a.Config.MetricsFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return bm.WriteText(f)
}
