package calibration

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/agbru/primebench/internal/config"
)

func TestGenerateWorkerLadder(t *testing.T) {
	t.Parallel()

	ladder := GenerateWorkerLadder()
	if len(ladder) == 0 {
		t.Fatal("empty ladder")
	}
	if ladder[0] != 1 {
		t.Errorf("ladder must start at 1 worker, got %d", ladder[0])
	}

	seen := make(map[int]bool)
	for _, w := range ladder {
		if w < 1 {
			t.Errorf("non-positive pool size %d in ladder", w)
		}
		if seen[w] {
			t.Errorf("duplicate pool size %d in ladder", w)
		}
		seen[w] = true
	}
}

func TestDedupeLadder(t *testing.T) {
	t.Parallel()

	got := dedupeLadder([]int{1, 2, 2, 0, 4, 4, -3, 8})
	want := []int{1, 2, 4, 8}
	if len(got) != len(want) {
		t.Fatalf("dedupeLadder = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dedupeLadder[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRun_SmallWorkload(t *testing.T) {
	cfg := config.AppConfig{Base: 1000, Width: 200, Count: 4}

	var buf bytes.Buffer
	best, err := Run(context.Background(), cfg, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if best < 1 {
		t.Errorf("best pool size = %d, want >= 1", best)
	}
	if !strings.Contains(buf.String(), "Calibration Summary") {
		t.Errorf("summary table missing:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "(Optimal)") {
		t.Errorf("optimal marker missing:\n%s", buf.String())
	}
}

func TestRun_InvalidWorkload(t *testing.T) {
	t.Parallel()

	cfg := config.AppConfig{Base: 0, Width: 0, Count: 4}
	if _, err := Run(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for a zero-width workload")
	}
}

func TestRun_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.AppConfig{Base: 1000, Width: 100, Count: 4}
	if _, err := Run(ctx, cfg, &bytes.Buffer{}); err == nil {
		t.Error("expected an error after cancellation")
	}
}
