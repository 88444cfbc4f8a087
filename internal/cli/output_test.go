package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/primebench/internal/config"
	"github.com/agbru/primebench/internal/orchestration"
)

func sampleRun() ([]orchestration.ModeResult, orchestration.Summary, config.AppConfig) {
	results := []orchestration.ModeResult{
		{Name: "Sequential", Workers: 1, Counts: []int{5, 7, 6}, Duration: 90 * time.Millisecond},
		{Name: "Parallel", Workers: 4, Counts: []int{5, 7, 6}, Duration: 30 * time.Millisecond},
	}
	summary := orchestration.BuildSummary(results)
	cfg := config.AppConfig{Base: 1000, Width: 100, Count: 3, Workers: 4}
	return results, summary, cfg
}

func TestWriteReportToFile(t *testing.T) {
	t.Parallel()

	results, summary, cfg := sampleRun()
	path := filepath.Join(t.TempDir(), "reports", "run.txt")

	if err := WriteReportToFile(results, summary, cfg, path); err != nil {
		t.Fatalf("WriteReportToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	report := string(data)

	for _, want := range []string{
		"# Interval: [1000, 1300)",
		"# Ranges: 3 x 100",
		"# Workers: 4",
		"[1000, 1100): 5",
		"[1200, 1300): 6",
		"Total primes: 18",
		"Speedup: 3.00x",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestWriteReportToFile_EmptyPath(t *testing.T) {
	t.Parallel()

	results, summary, cfg := sampleRun()
	if err := WriteReportToFile(results, summary, cfg, ""); err != nil {
		t.Errorf("empty path must be a no-op, got %v", err)
	}
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()

	_, summary, _ := sampleRun()
	line := FormatQuietResult(summary)
	if !strings.Contains(line, "primes=18") || !strings.Contains(line, "speedup=3.00x") {
		t.Errorf("quiet line = %q", line)
	}

	solo := FormatQuietResult(orchestration.Summary{TotalPrimes: 18})
	if solo != "primes=18" {
		t.Errorf("solo quiet line = %q, want primes=18", solo)
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()

	_, summary, _ := sampleRun()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, summary)
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("quiet output must end with a newline")
	}
}

func TestDisplayRangeCounts(t *testing.T) {
	t.Parallel()

	results, _, cfg := sampleRun()
	var buf bytes.Buffer
	DisplayRangeCounts(results, cfg, &buf)

	out := buf.String()
	if !strings.Contains(out, "[1000, 1100)") {
		t.Errorf("expected first range bounds, got %q", out)
	}
	if !strings.Contains(out, "7") {
		t.Errorf("expected per-range count, got %q", out)
	}
}

func TestDisplayRangeCounts_AllFailed(t *testing.T) {
	t.Parallel()

	results := []orchestration.ModeResult{
		{Name: "Sequential", Err: os.ErrDeadlineExceeded},
	}
	var buf bytes.Buffer
	DisplayRangeCounts(results, config.AppConfig{}, &buf)

	if buf.Len() != 0 {
		t.Errorf("expected no output when every mode failed, got %q", buf.String())
	}
}
