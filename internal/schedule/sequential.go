package schedule

import (
	"context"

	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/progress"
	"github.com/agbru/primebench/internal/workload"
)

// SequentialName is the registry key and report name of the sequential strategy.
const SequentialName = "Sequential"

// Sequential executes every work item on the calling goroutine, strictly in
// input order. It is the baseline against which the parallel strategy's
// speedup is measured.
type Sequential struct{}

// Verify interface compliance.
var _ Scheduler = Sequential{}

// NewSequential creates the sequential strategy.
func NewSequential() Sequential { return Sequential{} }

// Name returns the strategy name.
func (Sequential) Name() string { return SequentialName }

// Run applies fn to each item in order, failing fast on the first error.
func (s Sequential) Run(ctx context.Context, items []workload.Item, fn UnitFunc, onProgress progress.Callback) ([]int, error) {
	if onProgress == nil {
		onProgress = nopProgress
	}

	results := make([]int, len(items))
	total := float64(len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.WrapError(err, "%s execution aborted at work item %d", s.Name(), item.Index)
		}

		n, err := fn(ctx, item.Range)
		if err != nil {
			return nil, apperrors.WorkerFailureError{Mode: s.Name(), Unit: item.Index, Cause: err}
		}
		results[item.Index] = n
		onProgress(float64(i+1) / total)
	}
	return results, nil
}
