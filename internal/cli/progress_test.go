package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/briandowns/spinner"

	"github.com/agbru/primebench/internal/progress"
)

// fakeSpinner records spinner interactions for assertions.
type fakeSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (f *fakeSpinner) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
}

func (f *fakeSpinner) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeSpinner) UpdateSuffix(suffix string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suffixes = append(f.suffixes, suffix)
}

func withFakeSpinner(t *testing.T) *fakeSpinner {
	t.Helper()
	fake := &fakeSpinner{}
	prev := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return fake }
	t.Cleanup(func() { newSpinner = prev })
	return fake
}

func TestDisplayProgress_CompletesOnChannelClose(t *testing.T) {
	fake := withFakeSpinner(t)

	ch := make(chan progress.Update, 4)
	ch <- progress.Update{SchedulerIndex: 0, Value: 0.5}
	ch <- progress.Update{SchedulerIndex: 0, Value: 1.0}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	var buf bytes.Buffer
	DisplayProgress(&wg, ch, 1, &buf)
	wg.Wait()

	if !fake.started || !fake.stopped {
		t.Errorf("spinner lifecycle incomplete: started=%v stopped=%v", fake.started, fake.stopped)
	}
	if !strings.Contains(buf.String(), "All executions complete.") {
		t.Errorf("final line missing: %q", buf.String())
	}
}

func TestDisplayProgress_DrainsWhenUntracked(t *testing.T) {
	withFakeSpinner(t)

	ch := make(chan progress.Update, 2)
	ch <- progress.Update{SchedulerIndex: 0, Value: 0.5}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	var buf bytes.Buffer
	DisplayProgress(&wg, ch, 0, &buf) // zero executions: drain silently
	wg.Wait()

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
