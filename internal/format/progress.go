package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressState tracks the fractional progress of several concurrently
// observed executions and computes their average. The CLI and TUI both use
// it to render a single consolidated progress bar while one or more
// schedulers are working through the range list.
type ProgressState struct {
	mu        sync.Mutex
	fractions []float64
}

// NewProgressState creates a ProgressState tracking the given number of
// executions.
func NewProgressState(n int) *ProgressState {
	return &ProgressState{fractions: make([]float64, n)}
}

// Update records a new progress value for one execution. Out-of-range
// indices are ignored so a late update cannot panic the display goroutine.
//
// Parameters:
//   - index: The execution index (0 to n-1).
//   - value: The progress fraction (0.0 to 1.0).
func (ps *ProgressState) Update(index int, value float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if index >= 0 && index < len(ps.fractions) {
		ps.fractions[index] = value
	}
}

// CalculateAverage returns the mean progress across all executions.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if len(ps.fractions) == 0 {
		return 0.0
	}
	var total float64
	for _, f := range ps.fractions {
		total += f
	}
	return total / float64(len(ps.fractions))
}

// etaSmoothingFactor controls the exponential smoothing of the observed
// progress rate. Lower values react more slowly but produce a steadier ETA.
const etaSmoothingFactor = 0.3

// ProgressWithETA extends ProgressState with a smoothed estimate of the
// remaining run time, derived from the observed rate of progress.
type ProgressWithETA struct {
	*ProgressState

	mu           sync.Mutex
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second, exponentially smoothed
}

// NewProgressWithETA creates a tracker for the given number of executions.
func NewProgressWithETA(n int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(n),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a progress value and returns the new average
// progress together with the current ETA estimate.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	p.mu.Lock()
	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	if elapsed > 0 && avg > p.lastProgress {
		instantRate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = instantRate
		} else {
			p.progressRate = etaSmoothingFactor*instantRate + (1-etaSmoothingFactor)*p.progressRate
		}
		p.lastUpdate = now
		p.lastProgress = avg
	}
	p.mu.Unlock()

	return avg, p.GetETA()
}

// GetETA returns the current ETA estimate without recording an update.
// It returns 0 when no rate has been observed yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	avg := p.CalculateAverage()

	p.mu.Lock()
	rate := p.progressRate
	p.mu.Unlock()

	if rate <= 0 || avg >= 1.0 {
		return 0
	}
	remaining := (1.0 - avg) / rate
	return time.Duration(remaining * float64(time.Second))
}

// FormatETA renders an ETA for display. Unknown or non-positive estimates
// yield "calculating..."; sub-second estimates yield "< 1s".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// FormatProgressBarWithETA renders a textual progress bar of the given
// width followed by the percentage and ETA, suitable for a single-line
// terminal display.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	filled := int(progress * float64(width))

	var b strings.Builder
	b.Grow(width)
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return fmt.Sprintf("[%s] %5.1f%% (ETA: %s)", b.String(), progress*100, FormatETA(eta))
}
