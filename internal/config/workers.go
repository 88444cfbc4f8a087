package config

import "runtime"

// Worker count resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (PRIMEBENCH_WORKERS)
//   3. Cached calibration profile (~/.primebench_calibration.json)
//   4. Adaptive hardware estimation (this file)

// ApplyAdaptiveWorkers fills in the worker count from hardware
// characteristics when no explicit value was given. User-specified values
// pass through untouched.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkerCount()
	}
	return cfg
}

// EstimateOptimalWorkerCount provides a heuristic pool size without running
// benchmarks. The workload is CPU-bound with no blocking, so one worker per
// schedulable CPU is the sweet spot; oversubscription only adds scheduler
// churn.
func EstimateOptimalWorkerCount() int {
	n := runtime.NumCPU()
	if gmp := runtime.GOMAXPROCS(0); gmp < n {
		n = gmp
	}
	if n < 1 {
		return 1
	}
	return n
}
