package schedule

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/progress"
	"github.com/agbru/primebench/internal/workload"
)

// ParallelName is the registry key and report name of the parallel strategy.
const ParallelName = "Parallel"

// Parallel fans work items out to a fixed pool of goroutines drawing from a
// shared pull-queue. The pull-queue keeps the pool balanced even when item
// costs are uneven (higher ranges hold fewer primes, so static striping
// would leave some workers idle early).
//
// Results are written back by item position, so the returned slice is always
// in input order regardless of completion order. The pool is scoped to a
// single Run call: all workers have exited by the time Run returns.
type Parallel struct {
	workers int
}

// Verify interface compliance.
var _ Scheduler = (*Parallel)(nil)

// NewParallel creates a parallel strategy with a fixed pool of the given
// size.
//
// Parameters:
//   - workers: The pool size; must be at least 1.
//
// Returns:
//   - *Parallel: The configured strategy.
//   - error: An InvalidArgumentError when workers < 1.
func NewParallel(workers int) (*Parallel, error) {
	if workers < 1 {
		return nil, apperrors.NewInvalidArgumentError("workers", "must be at least 1, got %d", workers)
	}
	return &Parallel{workers: workers}, nil
}

// Name returns the strategy name.
func (*Parallel) Name() string { return ParallelName }

// Workers returns the fixed pool size.
func (p *Parallel) Workers() int { return p.workers }

// Run distributes the items across the worker pool and reassembles the
// results in input order.
//
// Failure semantics are fail-fast: the first failing item cancels the
// group's context, in-flight items observe the cancellation and drain, and
// Run returns the WorkerFailureError of the item that failed first. No
// partial result slice is returned.
func (p *Parallel) Run(ctx context.Context, items []workload.Item, fn UnitFunc, onProgress progress.Callback) ([]int, error) {
	if onProgress == nil {
		onProgress = nopProgress
	}

	results := make([]int, len(items))
	total := int64(len(items))
	var completed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan workload.Item)

	// Feeder. Closing jobs releases idle workers; a canceled context
	// releases the feeder when workers have stopped pulling.
	g.Go(func() error {
		defer close(jobs)
		for _, item := range items {
			select {
			case jobs <- item:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < p.workers; w++ {
		g.Go(func() error {
			for item := range jobs {
				n, err := fn(ctx, item.Range)
				if err != nil {
					if apperrors.IsContextError(err) {
						// Another worker already failed and canceled the
						// group; its error is the one to report.
						return err
					}
					return apperrors.WorkerFailureError{Mode: ParallelName, Unit: item.Index, Cause: err}
				}
				// Disjoint indices: no two workers ever share a slot.
				results[item.Index] = n
				onProgress(float64(completed.Add(1)) / float64(total))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
