// Package schedule implements the benchmark's work-distribution layer: a
// Scheduler abstraction over how a fixed sequence of work items is executed,
// with a sequential strategy and a fixed-pool parallel strategy behind the
// same contract. Whatever the strategy, the returned result set is ordered
// by item position, never by completion order.
package schedule

import (
	"context"

	"github.com/agbru/primebench/internal/progress"
	"github.com/agbru/primebench/internal/workload"
)

// UnitFunc is the unit-of-work function applied to each work item's range.
// It must be deterministic and side-effect free; the scheduler may invoke it
// from any goroutine.
type UnitFunc func(ctx context.Context, r workload.Range) (int, error)

// Scheduler executes an ordered sequence of work items with a unit-of-work
// function and returns one result per item, in item order.
//
// Implementations are stateless across calls: each Run is independent, and
// any goroutines started during a Run terminate before it returns.
type Scheduler interface {
	// Name returns the human-readable strategy name used in reports.
	Name() string

	// Run applies fn to every item and returns the results in item order.
	//
	// If any application of fn fails, Run returns a WorkerFailureError
	// identifying the failing item and no result slice; a partial result is
	// never returned as if valid. onProgress, when non-nil, is invoked with
	// the fraction of completed items after each item finishes.
	Run(ctx context.Context, items []workload.Item, fn UnitFunc, onProgress progress.Callback) ([]int, error)
}

// nopProgress is substituted for a nil callback so strategies can report
// unconditionally.
func nopProgress(float64) {}
