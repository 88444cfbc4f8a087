package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"

	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/workload"
)

// testItems builds n work items with small distinct ranges.
func testItems(n int) []workload.Item {
	ranges, err := workload.Partition(0, 10, n)
	if err != nil {
		panic(err)
	}
	return workload.Items(ranges)
}

// rangeSum is a deterministic, side-effect-free unit function used in place
// of the real prime counter.
func rangeSum(_ context.Context, r workload.Range) (int, error) {
	sum := 0
	for n := r.Start; n < r.End; n++ {
		sum += int(n % 101)
	}
	return sum, nil
}

func TestSequentialRun(t *testing.T) {
	t.Parallel()

	t.Run("results are in item order", func(t *testing.T) {
		t.Parallel()
		items := testItems(8)
		got, err := Sequential{}.Run(context.Background(), items, rangeSum, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, item := range items {
			want, _ := rangeSum(context.Background(), item.Range)
			if got[item.Index] != want {
				t.Errorf("result[%d] = %d, want %d", item.Index, got[item.Index], want)
			}
		}
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		t.Parallel()
		got, err := Sequential{}.Run(context.Background(), nil, rangeSum, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})

	t.Run("fails fast and identifies the unit", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		calls := 0
		fn := func(_ context.Context, r workload.Range) (int, error) {
			calls++
			if r.Start == 30 { // item index 3
				return 0, boom
			}
			return 1, nil
		}

		res, err := Sequential{}.Run(context.Background(), testItems(8), fn, nil)
		if res != nil {
			t.Error("no result slice may be returned on failure")
		}
		var wf apperrors.WorkerFailureError
		if !errors.As(err, &wf) {
			t.Fatalf("expected WorkerFailureError, got %v", err)
		}
		if wf.Unit != 3 || wf.Mode != SequentialName {
			t.Errorf("failure = %+v, want unit 3 in %s", wf, SequentialName)
		}
		if calls != 4 {
			t.Errorf("fn called %d times, want 4 (fail fast)", calls)
		}
	})

	t.Run("canceled context aborts", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Sequential{}.Run(ctx, testItems(4), rangeSum, nil)
		if !apperrors.IsContextError(err) {
			t.Errorf("expected a context error, got %v", err)
		}
	})

	t.Run("progress reaches 1.0", func(t *testing.T) {
		t.Parallel()
		var last float64
		_, err := Sequential{}.Run(context.Background(), testItems(5), rangeSum, func(f float64) { last = f })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if last != 1.0 {
			t.Errorf("final progress = %f, want 1.0", last)
		}
	})
}

func TestNewParallel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"one worker", 1, false},
		{"many workers", 64, false},
		{"zero workers rejected", 0, true},
		{"negative workers rejected", -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := NewParallel(tt.workers)
			if tt.wantErr {
				var argErr apperrors.InvalidArgumentError
				if !errors.As(err, &argErr) {
					t.Errorf("expected InvalidArgumentError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Workers() != tt.workers {
				t.Errorf("Workers() = %d, want %d", p.Workers(), tt.workers)
			}
		})
	}
}

func TestParallelRun(t *testing.T) {
	t.Parallel()

	t.Run("matches sequential for every pool size", func(t *testing.T) {
		t.Parallel()
		items := testItems(23)
		want, err := Sequential{}.Run(context.Background(), items, rangeSum, nil)
		if err != nil {
			t.Fatalf("sequential run failed: %v", err)
		}

		for _, workers := range []int{1, 2, 3, 8, 16, 64} {
			p, err := NewParallel(workers)
			if err != nil {
				t.Fatalf("NewParallel(%d): %v", workers, err)
			}
			got, err := p.Run(context.Background(), items, rangeSum, nil)
			if err != nil {
				t.Fatalf("parallel run with %d workers failed: %v", workers, err)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("workers=%d: result[%d] = %d, want %d", workers, i, got[i], want[i])
				}
			}
		}
	})

	t.Run("more workers than items", func(t *testing.T) {
		t.Parallel()
		p, _ := NewParallel(32)
		got, err := p.Run(context.Background(), testItems(3), rangeSum, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		t.Parallel()
		p, _ := NewParallel(4)
		got, err := p.Run(context.Background(), nil, rangeSum, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})

	t.Run("one failing unit fails the whole call", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		fn := func(ctx context.Context, r workload.Range) (int, error) {
			if r.Start == 50 { // item index 5
				return 0, boom
			}
			return rangeSum(ctx, r)
		}

		p, _ := NewParallel(4)
		res, err := p.Run(context.Background(), testItems(20), fn, nil)
		if res != nil {
			t.Error("no result slice may be returned on failure")
		}
		var wf apperrors.WorkerFailureError
		if !errors.As(err, &wf) {
			t.Fatalf("expected WorkerFailureError, got %v", err)
		}
		if wf.Unit != 5 || wf.Mode != ParallelName {
			t.Errorf("failure = %+v, want unit 5 in %s", wf, ParallelName)
		}
		if !errors.Is(err, boom) {
			t.Error("the original cause should survive wrapping")
		}
	})

	t.Run("every item processed exactly once", func(t *testing.T) {
		t.Parallel()
		var mu sync.Mutex
		seen := make(map[int64]int)
		fn := func(_ context.Context, r workload.Range) (int, error) {
			mu.Lock()
			seen[r.Start]++
			mu.Unlock()
			return 0, nil
		}

		items := testItems(50)
		p, _ := NewParallel(7)
		if _, err := p.Run(context.Background(), items, fn, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(seen) != len(items) {
			t.Fatalf("processed %d distinct items, want %d", len(seen), len(items))
		}
		for start, n := range seen {
			if n != 1 {
				t.Errorf("item starting at %d processed %d times", start, n)
			}
		}
	})

	t.Run("canceled context aborts", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p, _ := NewParallel(4)
		_, err := p.Run(ctx, testItems(10), rangeSum, nil)
		if err == nil {
			t.Fatal("expected an error from a canceled run")
		}
	})
}

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory(4)

	t.Run("List is sorted and complete", func(t *testing.T) {
		t.Parallel()
		names := factory.List()
		if len(names) != 2 || names[0] != "parallel" || names[1] != "sequential" {
			t.Errorf("List() = %v, want [parallel sequential]", names)
		}
	})

	t.Run("Get is case-insensitive", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"Sequential", "sequential", "PARALLEL"} {
			if _, err := factory.Get(name); err != nil {
				t.Errorf("Get(%q) failed: %v", name, err)
			}
		}
	})

	t.Run("Get rejects unknown modes", func(t *testing.T) {
		t.Parallel()
		_, err := factory.Get("distributed")
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigError, got %v", err)
		}
	})

	t.Run("GetAll returns every strategy", func(t *testing.T) {
		t.Parallel()
		if got := factory.GetAll(); len(got) != 2 {
			t.Errorf("GetAll() returned %d schedulers, want 2", len(got))
		}
	})

	t.Run("worker clamp keeps the factory usable", func(t *testing.T) {
		t.Parallel()
		f := NewDefaultFactory(0)
		s, err := f.Get("parallel")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.(*Parallel).Workers() != 1 {
			t.Errorf("Workers() = %d, want 1", s.(*Parallel).Workers())
		}
	})
}
