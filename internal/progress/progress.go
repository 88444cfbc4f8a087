// Package progress defines the progress reporting types shared between the
// schedulers that produce updates and the presentation layers that consume
// them. Keeping them in a leaf package avoids import cycles between the
// scheduling and orchestration layers.
package progress

// Update carries a single progress notification from a running execution.
type Update struct {
	// SchedulerIndex identifies which execution produced the update, matching
	// the index of the scheduler in the benchmark's execution order.
	SchedulerIndex int
	// Value is the fraction of work items completed, from 0.0 to 1.0.
	Value float64
}

// Callback receives the fraction of completed work items. Schedulers invoke
// it after every finished work item; implementations must be cheap and must
// not block, as they run on the worker's goroutine.
type Callback func(fraction float64)
