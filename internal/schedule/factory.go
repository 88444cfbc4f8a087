package schedule

import (
	"sort"
	"strings"

	apperrors "github.com/agbru/primebench/internal/errors"
)

// SchedulerFactory resolves execution strategies by name. It decouples mode
// selection (a configuration concern) from the strategies themselves and
// gives tests a seam for substituting fakes.
type SchedulerFactory interface {
	// Get returns the scheduler registered under the given name
	// (case-insensitive).
	Get(name string) (Scheduler, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns all registered schedulers in List() order.
	GetAll() []Scheduler
}

// registryFactory is the default map-backed SchedulerFactory.
type registryFactory struct {
	schedulers map[string]Scheduler
}

// NewDefaultFactory builds the standard registry holding the sequential
// strategy and a parallel strategy with the given pool size.
//
// Parameters:
//   - workers: The parallel strategy's pool size; values below 1 are
//     clamped to 1 so the factory is always usable.
//
// Returns:
//   - SchedulerFactory: The populated registry.
func NewDefaultFactory(workers int) SchedulerFactory {
	if workers < 1 {
		workers = 1
	}
	par, err := NewParallel(workers)
	if err != nil {
		// Unreachable after clamping.
		panic(err)
	}
	return &registryFactory{
		schedulers: map[string]Scheduler{
			strings.ToLower(SequentialName): NewSequential(),
			strings.ToLower(ParallelName):   par,
		},
	}
}

// Get returns the scheduler registered under name.
func (f *registryFactory) Get(name string) (Scheduler, error) {
	s, ok := f.schedulers[strings.ToLower(name)]
	if !ok {
		return nil, apperrors.NewConfigError("unknown execution mode %q (available: %s)",
			name, strings.Join(f.List(), ", "))
	}
	return s, nil
}

// List returns the registered names in sorted order.
func (f *registryFactory) List() []string {
	names := make([]string, 0, len(f.schedulers))
	for name := range f.schedulers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns all registered schedulers in List() order.
func (f *registryFactory) GetAll() []Scheduler {
	names := f.List()
	all := make([]Scheduler, 0, len(names))
	for _, name := range names {
		s, err := f.Get(name)
		if err == nil {
			all = append(all, s)
		}
	}
	return all
}
