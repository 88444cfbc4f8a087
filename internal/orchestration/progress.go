package orchestration

import (
	"time"

	"github.com/agbru/primebench/internal/format"
	"github.com/agbru/primebench/internal/progress"
)

// ProgressAggregator manages multi-mode progress aggregation.
// It wraps format.ProgressWithETA and provides a higher-level API for
// consuming progress updates from a channel. Both CLI and TUI use this to
// avoid duplicating the aggregation setup and update logic.
type ProgressAggregator struct {
	state         *format.ProgressWithETA
	numExecutions int
}

// NewProgressAggregator creates a new aggregator for the given number of
// execution modes. Returns nil if numExecutions <= 0.
func NewProgressAggregator(numExecutions int) *ProgressAggregator {
	if numExecutions <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:         format.NewProgressWithETA(numExecutions),
		numExecutions: numExecutions,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// SchedulerIndex is the index of the mode that sent the update.
	SchedulerIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all modes.
	AverageProgress float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.Update) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.SchedulerIndex, update.Value)
	return AggregatedProgress{
		SchedulerIndex:  update.SchedulerIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumExecutions returns the number of execution modes being tracked.
func (a *ProgressAggregator) NumExecutions() int {
	return a.numExecutions
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numExecutions <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan progress.Update) {
	for range progressChan {
	}
}
