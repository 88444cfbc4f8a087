package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// BenchmarkMetrics aggregates Prometheus instruments for one benchmark run.
// The harness is a short-lived CLI, so instead of exposing an HTTP endpoint
// the collected samples are dumped once, in text exposition format, via
// WriteText.
type BenchmarkMetrics struct {
	registry *prometheus.Registry

	rangesProcessed *prometheus.CounterVec
	primesFound     *prometheus.CounterVec
	rangeDuration   *prometheus.HistogramVec
	runDuration     *prometheus.GaugeVec
	speedup         prometheus.Gauge
	workerCount     prometheus.Gauge
}

// NewBenchmarkMetrics creates a metrics set backed by a private registry.
func NewBenchmarkMetrics() *BenchmarkMetrics {
	bm := &BenchmarkMetrics{
		registry: prometheus.NewRegistry(),
		rangesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primebench_ranges_processed_total",
			Help: "Number of sub-ranges whose primes were counted, by execution mode.",
		}, []string{"mode"}),
		primesFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primebench_primes_found_total",
			Help: "Number of primes found, by execution mode.",
		}, []string{"mode"}),
		rangeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "primebench_range_duration_seconds",
			Help:    "Time spent counting primes in one sub-range.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"mode"}),
		runDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "primebench_run_duration_seconds",
			Help: "Wall-clock duration of one full execution mode.",
		}, []string{"mode"}),
		speedup: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "primebench_speedup_ratio",
			Help: "Sequential duration divided by parallel duration.",
		}),
		workerCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "primebench_worker_count",
			Help: "Size of the parallel worker pool.",
		}),
	}

	bm.registry.MustRegister(
		bm.rangesProcessed,
		bm.primesFound,
		bm.rangeDuration,
		bm.runDuration,
		bm.speedup,
		bm.workerCount,
	)
	return bm
}

// ObserveRange records the completion of one sub-range under the given mode.
func (bm *BenchmarkMetrics) ObserveRange(mode string, primes int, d time.Duration) {
	bm.rangesProcessed.WithLabelValues(mode).Inc()
	bm.primesFound.WithLabelValues(mode).Add(float64(primes))
	bm.rangeDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// SetRunDuration records the wall-clock time of one full execution mode.
func (bm *BenchmarkMetrics) SetRunDuration(mode string, d time.Duration) {
	bm.runDuration.WithLabelValues(mode).Set(d.Seconds())
}

// SetSpeedup records the sequential/parallel duration ratio.
func (bm *BenchmarkMetrics) SetSpeedup(ratio float64) {
	bm.speedup.Set(ratio)
}

// SetWorkerCount records the parallel pool size.
func (bm *BenchmarkMetrics) SetWorkerCount(n int) {
	bm.workerCount.Set(float64(n))
}

// WriteText renders every collected sample in Prometheus text exposition
// format.
func (bm *BenchmarkMetrics) WriteText(w io.Writer) error {
	families, err := bm.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, fam := range families {
		if err := enc.Encode(fam); err != nil {
			return fmt.Errorf("encoding metric family %q: %w", fam.GetName(), err)
		}
	}
	return nil
}
