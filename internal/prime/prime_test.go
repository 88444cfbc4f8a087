package prime

import (
	"context"
	"testing"

	"github.com/agbru/primebench/internal/workload"
)

func TestIsPrime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int64
		want bool
	}{
		{-7, false},
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{9, false},
		{17, true},
		{25, false},
		{97, true},
		{1_000_003, true},
		{1_000_001, false}, // 101 * 9901
	}

	for _, tt := range tests {
		if got := IsPrime(tt.n); got != tt.want {
			t.Errorf("IsPrime(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestCountInRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		r    workload.Range
		want int
	}{
		{"primes 11 13 17 19", workload.Range{Start: 10, End: 20}, 4},
		{"empty range", workload.Range{Start: 50, End: 50}, 0},
		{"single prime", workload.Range{Start: 2, End: 3}, 1},
		{"below two", workload.Range{Start: -10, End: 2}, 0},
		{"first hundred", workload.Range{Start: 0, End: 100}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CountInRange(context.Background(), tt.r)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CountInRange(%+v) = %d, want %d", tt.r, got, tt.want)
			}
		})
	}
}

func TestCountInRangeCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CountInRange(ctx, workload.Range{Start: 1_000_000, End: 1_010_000})
	if err == nil {
		t.Fatal("expected a context error from a canceled scan")
	}
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func BenchmarkCountInRange(b *testing.B) {
	r := workload.Range{Start: 1_000_000, End: 1_010_000}
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := CountInRange(ctx, r); err != nil {
			b.Fatal(err)
		}
	}
}
