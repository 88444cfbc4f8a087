package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/primebench/internal/metrics"
	"github.com/agbru/primebench/internal/progress"
	"github.com/agbru/primebench/internal/schedule"
	"github.com/agbru/primebench/internal/workload"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of a slow
// display blocking the workload being timed.
const ProgressBufferMultiplier = 5

// tracerName identifies the instrumentation scope of the spans emitted here.
const tracerName = "github.com/agbru/primebench/internal/orchestration"

// BenchmarkOptions carries the optional instrumentation hooks for a run.
type BenchmarkOptions struct {
	// Metrics, when non-nil, receives per-range and per-mode samples.
	Metrics *metrics.BenchmarkMetrics
	// Tracer, when non-nil, overrides the globally registered tracer.
	Tracer trace.Tracer
}

// ExecuteBenchmark runs the prime-counting workload once per scheduling
// strategy and times each execution.
//
// Modes run strictly one after another, never concurrently: each mode's
// wall-clock time is the quantity under measurement, so no other mode may
// compete with it for CPU. The per-mode timer covers exactly the Run call;
// memory snapshots and span bookkeeping sit outside it.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - schedulers: The strategies to execute, in run order.
//   - items: The partitioned workload, shared by all modes.
//   - fn: The unit function counting primes in one sub-range.
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//   - opts: Optional metrics and tracing hooks.
//
// Returns:
//   - []ModeResult: One result per scheduler, in the same order.
func ExecuteBenchmark(ctx context.Context, schedulers []schedule.Scheduler, items []workload.Item, fn schedule.UnitFunc, reporter ProgressReporter, out io.Writer, opts BenchmarkOptions) []ModeResult {
	results := make([]ModeResult, len(schedulers))
	progressChan := make(chan progress.Update, len(schedulers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(schedulers), out)

	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	collector := metrics.NewMemoryCollector()

	for i, scheduler := range schedulers {
		modeCtx, span := tracer.Start(ctx, "benchmark.mode",
			trace.WithAttributes(
				attribute.String("mode", scheduler.Name()),
				attribute.Int("ranges", len(items)),
			))

		onProgress := forwardProgress(progressChan, i)
		unit := fn
		if opts.Metrics != nil {
			unit = instrumentUnit(fn, opts.Metrics, scheduler.Name())
		}

		before := collector.Snapshot()
		startTime := time.Now()
		counts, err := scheduler.Run(modeCtx, items, unit, onProgress)
		elapsed := time.Since(startTime)
		after := collector.Snapshot()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "mode failed")
		}
		span.SetAttributes(attribute.Int64("duration_ms", elapsed.Milliseconds()))
		span.End()

		results[i] = ModeResult{
			Name:     scheduler.Name(),
			Workers:  schedulerWorkers(scheduler),
			Counts:   counts,
			Duration: elapsed,
			Memory:   metrics.Delta(before, after),
			Err:      err,
		}
		if opts.Metrics != nil {
			opts.Metrics.SetRunDuration(scheduler.Name(), elapsed)
		}
	}

	close(progressChan)
	displayWg.Wait()

	return results
}

// forwardProgress adapts the scheduler callback to the reporter channel.
// Sends never block: a stalled display drops updates instead of skewing
// the measurement.
func forwardProgress(ch chan<- progress.Update, schedulerIndex int) progress.Callback {
	return func(fraction float64) {
		select {
		case ch <- progress.Update{SchedulerIndex: schedulerIndex, Value: fraction}:
		default:
		}
	}
}

// instrumentUnit wraps the unit function with per-range metric samples.
// The wrapper must stay safe for concurrent calls from pool workers.
func instrumentUnit(fn schedule.UnitFunc, bm *metrics.BenchmarkMetrics, mode string) schedule.UnitFunc {
	return func(ctx context.Context, r workload.Range) (int, error) {
		startTime := time.Now()
		n, err := fn(ctx, r)
		if err == nil {
			bm.ObserveRange(mode, n, time.Since(startTime))
		}
		return n, err
	}
}

func schedulerWorkers(s schedule.Scheduler) int {
	if p, ok := s.(*schedule.Parallel); ok {
		return p.Workers()
	}
	return 1
}
