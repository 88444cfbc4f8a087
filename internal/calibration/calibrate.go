// Package calibration sweeps worker-pool sizes over the real workload to
// find the fastest configuration for this machine, and caches the winner.
package calibration

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/agbru/primebench/internal/config"
	"github.com/agbru/primebench/internal/prime"
	"github.com/agbru/primebench/internal/schedule"
	"github.com/agbru/primebench/internal/workload"
)

// calibrationResult holds the timing of one pool size.
type calibrationResult struct {
	Workers  int
	Duration time.Duration
	Err      error
}

// GenerateWorkerLadder generates the list of pool sizes to test based on
// the number of available CPU cores.
//
// The rationale:
// - Single-core: only one worker makes sense
// - Few cores: test around the core count, oversubscription rarely helps
// - Many cores: include sub-core sizes, memory bandwidth can saturate first
func GenerateWorkerLadder() []int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return []int{1}
	case numCPU <= 4:
		return dedupeLadder([]int{1, 2, numCPU, numCPU * 2})
	case numCPU <= 16:
		return dedupeLadder([]int{1, 2, 4, numCPU / 2, numCPU, numCPU * 2})
	default:
		return dedupeLadder([]int{1, 4, 8, numCPU / 2, numCPU, numCPU + numCPU/2, numCPU * 2})
	}
}

// dedupeLadder removes duplicates and non-positive values while keeping the
// ascending order of the first occurrence.
func dedupeLadder(ladder []int) []int {
	seen := make(map[int]bool, len(ladder))
	out := ladder[:0]
	for _, w := range ladder {
		if w < 1 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// Run executes the calibration sweep: it times the parallel strategy over
// the configured workload once per ladder entry and reports the fastest
// pool size. The caller decides whether to persist the winner to the
// profile cache.
//
// Parameters:
//   - ctx: The context bounding the whole sweep.
//   - cfg: The application configuration describing the workload.
//   - out: The writer for the summary table.
//
// Returns:
//   - int: The fastest worker count.
//   - error: An error if the workload is invalid or every size failed.
func Run(ctx context.Context, cfg config.AppConfig, out io.Writer) (int, error) {
	ranges, err := workload.Partition(cfg.Base, cfg.Width, cfg.Count)
	if err != nil {
		return 0, err
	}
	items := workload.Items(ranges)

	ladder := GenerateWorkerLadder()
	results := make([]calibrationResult, 0, len(ladder))
	bestWorkers := 0
	var bestDuration time.Duration

	fmt.Fprintf(out, "Calibrating pool size over %d ranges of %d...\n", cfg.Count, cfg.Width)

	for _, workers := range ladder {
		res := timeWorkers(ctx, workers, items)
		results = append(results, res)
		if res.Err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			continue
		}
		if bestWorkers == 0 || res.Duration < bestDuration {
			bestWorkers = workers
			bestDuration = res.Duration
		}
	}

	printCalibrationResults(out, results, bestWorkers)

	if bestWorkers == 0 {
		return 0, fmt.Errorf("calibration failed: no pool size completed the workload")
	}
	return bestWorkers, nil
}

// timeWorkers runs the parallel strategy once with the given pool size.
func timeWorkers(ctx context.Context, workers int, items []workload.Item) calibrationResult {
	p, err := schedule.NewParallel(workers)
	if err != nil {
		return calibrationResult{Workers: workers, Err: err}
	}
	startTime := time.Now()
	_, err = p.Run(ctx, items, prime.CountInRange, nil)
	return calibrationResult{
		Workers:  workers,
		Duration: time.Since(startTime),
		Err:      err,
	}
}
