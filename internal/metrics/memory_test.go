package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestDelta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	buf := make([]byte, 1024*1024) // 1 MB
	buf[0] = 1

	after := mc.Snapshot()
	d := Delta(before, after)

	if after.TotalAlloc < before.TotalAlloc {
		t.Error("TotalAlloc should not decrease between snapshots")
	}
	if d.AllocBytes == 0 {
		t.Error("expected a non-zero allocation delta after allocating 1 MB")
	}
}
