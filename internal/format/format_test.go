package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{"microseconds", 250 * time.Microsecond, "250µs"},
		{"milliseconds", 42 * time.Millisecond, "42ms"},
		{"just below a second", 999 * time.Millisecond, "999ms"},
		{"seconds", 3 * time.Second, "3s"},
		{"zero", 0, "0µs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatExecutionDuration(tt.d); got != tt.expected {
				t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.expected)
			}
		})
	}
}

func TestFormatSpeedup(t *testing.T) {
	t.Parallel()
	if got := FormatSpeedup(3.4167); got != "3.42x" {
		t.Errorf("FormatSpeedup = %q, want %q", got, "3.42x")
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		b        uint64
		expected string
	}{
		{"bytes", 512, "512 B"},
		{"kibibytes", 2048, "2.0 KiB"},
		{"mebibytes", 3 * 1024 * 1024, "3.0 MiB"},
		{"fractional", 1536, "1.5 KiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatBytes(tt.b); got != tt.expected {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.b, got, tt.expected)
			}
		})
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()

	t.Run("average over all executions", func(t *testing.T) {
		t.Parallel()
		ps := NewProgressState(2)
		ps.Update(0, 0.25)
		ps.Update(1, 0.75)
		if avg := ps.CalculateAverage(); avg != 0.5 {
			t.Errorf("average = %f, want 0.5", avg)
		}
	})

	t.Run("out of range updates are ignored", func(t *testing.T) {
		t.Parallel()
		ps := NewProgressState(1)
		ps.Update(-1, 0.9)
		ps.Update(5, 0.9)
		if avg := ps.CalculateAverage(); avg != 0 {
			t.Errorf("average = %f, want 0", avg)
		}
	})

	t.Run("empty state averages to zero", func(t *testing.T) {
		t.Parallel()
		ps := NewProgressState(0)
		if avg := ps.CalculateAverage(); avg != 0 {
			t.Errorf("average = %f, want 0", avg)
		}
	})
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()

	t.Run("initial ETA is zero", func(t *testing.T) {
		t.Parallel()
		p := NewProgressWithETA(1)
		if eta := p.GetETA(); eta != 0 {
			t.Errorf("initial ETA = %v, want 0", eta)
		}
	})

	t.Run("UpdateWithETA returns the running average", func(t *testing.T) {
		t.Parallel()
		p := NewProgressWithETA(2)
		avg, eta := p.UpdateWithETA(0, 0.5)
		if avg != 0.25 {
			t.Errorf("average = %f, want 0.25", avg)
		}
		if eta < 0 {
			t.Errorf("ETA should never be negative, got %v", eta)
		}
	})

	t.Run("ETA derives from the observed rate", func(t *testing.T) {
		t.Parallel()
		p := NewProgressWithETA(1)
		p.Update(0, 0.5)
		p.progressRate = 0.1 // 10% per second

		eta := p.GetETA()
		want := 5 * time.Second
		if eta < want-time.Second || eta > want+time.Second {
			t.Errorf("ETA = %v, want approximately %v", eta, want)
		}
	})
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{"zero", 0, "calculating..."},
		{"negative", -time.Second, "calculating..."},
		{"sub-second", 300 * time.Millisecond, "< 1s"},
		{"seconds", 45 * time.Second, "45s"},
		{"whole minute", time.Minute, "1m"},
		{"minutes and seconds", 2*time.Minute + 30*time.Second, "2m30s"},
		{"whole hour", time.Hour, "1h"},
		{"hours and minutes", 3*time.Hour + 45*time.Minute, "3h45m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatETA(tt.eta); got != tt.expected {
				t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.expected)
			}
		})
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()

	bar := FormatProgressBarWithETA(0.5, 10*time.Second, 10)
	if !strings.Contains(bar, "50.0%") {
		t.Errorf("bar should show percentage, got %q", bar)
	}
	if !strings.Contains(bar, "10s") {
		t.Errorf("bar should show ETA, got %q", bar)
	}
	if strings.Count(bar, "█") != 5 {
		t.Errorf("bar should be half filled, got %q", bar)
	}

	clamped := FormatProgressBarWithETA(1.5, 0, 4)
	if strings.Count(clamped, "█") != 4 {
		t.Errorf("overflowing progress should clamp to full, got %q", clamped)
	}
}
