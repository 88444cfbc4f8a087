// Package sysmon provides system-wide CPU and memory usage sampling.
package sysmon

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Watcher samples resource usage in the background and keeps the peak values
// observed. One watcher is started per benchmark run so the report can show
// how hard the prime counting drove the machine.
type Watcher struct {
	interval time.Duration

	mu   sync.Mutex
	peak Stats

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher sampling at the given interval. Intervals
// below 50ms are raised to 50ms to keep the sampling overhead negligible
// next to the workload being timed.
func NewWatcher(interval time.Duration) *Watcher {
	if interval < 50*time.Millisecond {
		interval = 50 * time.Millisecond
	}
	return &Watcher{interval: interval}
}

// Start begins background sampling. It takes an initial sample immediately
// so short runs still record something.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.record(Sample())

	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.record(Sample())
			}
		}
	}()
}

// Stop ends sampling and returns the peak usage observed since Start.
func (w *Watcher) Stop() Stats {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.peak
}

func (w *Watcher) record(s Stats) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s.CPUPercent > w.peak.CPUPercent {
		w.peak.CPUPercent = s.CPUPercent
	}
	if s.MemPercent > w.peak.MemPercent {
		w.peak.MemPercent = s.MemPercent
	}
}
