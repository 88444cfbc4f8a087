// Package orchestration coordinates timed executions of the prime-counting
// workload under each scheduling strategy and aggregates results for
// comparison. It decouples business logic from presentation via the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
