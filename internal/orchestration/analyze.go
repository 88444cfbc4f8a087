package orchestration

import (
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/schedule"
)

// AnalyzeBenchmarkResults processes the results of all execution modes and
// generates the summary report.
//
// It validates that every successful mode produced the same per-range prime
// counts, computes the speedup of the parallel mode over the sequential
// baseline, and displays the comparison table. It handles the logic for
// determining global success or failure based on the individual outcomes.
//
// Parameters:
//   - results: The slice of mode results to analyze.
//   - presenter: The result presenter for display formatting.
//   - errorHandler: The handler translating errors into exit codes.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeBenchmarkResults(results []ModeResult, presenter ResultPresenter, errorHandler ErrorHandler, out io.Writer) int {
	var firstValid *ModeResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValid == nil {
				firstValid = &results[i]
			}
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No execution mode could complete the workload.\n")
		return errorHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !equalCounts(res.Counts, firstValid.Counts) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The execution modes disagree on the prime counts.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	// A single failed mode aborts the whole comparison: a timing table with
	// one side missing must never be reported as a completed benchmark.
	if firstError != nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. %d of %d execution modes did not complete.\n",
			len(results)-successCount, len(results))
		return errorHandler.HandleError(firstError, 0, out)
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentSummary(BuildSummary(results), out)
	return apperrors.ExitSuccess
}

// BuildSummary derives the totals and the speedup verdict from the per-mode
// results. The ratio is only defined when both reference modes succeeded,
// and only measurable when the parallel clock registered a non-zero time.
func BuildSummary(results []ModeResult) Summary {
	var summary Summary
	var seq, par *ModeResult
	totalSet := false

	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if !totalSet {
			summary.TotalPrimes = results[i].TotalPrimes()
			totalSet = true
		}
		switch {
		case strings.EqualFold(results[i].Name, schedule.SequentialName):
			seq = &results[i]
		case strings.EqualFold(results[i].Name, schedule.ParallelName):
			par = &results[i]
		}
	}

	if seq != nil {
		summary.SeqDuration = seq.Duration
	}
	if par != nil {
		summary.ParDuration = par.Duration
		summary.Workers = par.Workers
	}
	if seq != nil && par != nil {
		summary.HasSpeedup = true
		if par.Duration > 0 {
			summary.Measurable = true
			summary.Speedup = float64(seq.Duration) / float64(par.Duration)
		}
	}
	return summary
}

func equalCounts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
