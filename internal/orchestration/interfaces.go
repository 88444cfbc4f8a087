package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/primebench/internal/metrics"
	"github.com/agbru/primebench/internal/progress"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// ModeResult encapsulates the outcome of one timed execution mode.
// It serves as the shared domain type between orchestration and
// presentation layers.
type ModeResult struct {
	// Name is the identifier of the execution mode (e.g., "Sequential").
	Name string
	// Workers is the pool size used, 1 for sequential execution.
	Workers int
	// Counts holds the prime count per sub-range, in partition order.
	// It is nil if an error occurred.
	Counts []int
	// Duration is the wall-clock time of the full execution.
	Duration time.Duration
	// Memory is the runtime memory cost measured around the execution.
	Memory metrics.MemoryDelta
	// Err contains any error that occurred during the execution.
	Err error
}

// TotalPrimes returns the sum of the per-range counts.
func (r ModeResult) TotalPrimes() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// Summary condenses the cross-mode comparison into the numbers the final
// report presents.
type Summary struct {
	// TotalPrimes is the agreed-upon total across successful modes.
	TotalPrimes int
	// SeqDuration and ParDuration are the wall-clock times of the two
	// reference modes, zero when the mode did not run.
	SeqDuration time.Duration
	ParDuration time.Duration
	// Workers is the parallel pool size, 0 when the parallel mode did not run.
	Workers int
	// HasSpeedup reports whether both reference modes completed so a ratio
	// can be stated at all.
	HasSpeedup bool
	// Measurable is false when the parallel run finished too fast for the
	// clock to register, making the ratio undefined.
	Measurable bool
	// Speedup is SeqDuration / ParDuration. Only valid when HasSpeedup and
	// Measurable are both true.
	Speedup float64
}

// ProgressReporter defines the interface for displaying execution progress.
// This interface decouples the orchestration layer from the presentation
// layer; implementations handle the visual representation (spinners,
// progress bars, TUI) while orchestration focuses on running the modes.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving updates from the running modes.
	//   - numExecutions: The number of execution modes being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numExecutions int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, numExecutions int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numExecutions int, out io.Writer) {
	f(wg, progressChan, numExecutions, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting benchmark results.
// This allows different output formats (CLI, TUI, file reports) without
// modifying the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-mode comparison table.
	PresentComparisonTable(results []ModeResult, out io.Writer)

	// PresentSummary displays the final totals and the speedup verdict.
	PresentSummary(summary Summary, out io.Writer)
}

// ErrorHandler handles execution errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
