package orchestration

import (
	"sort"
	"strings"

	"github.com/agbru/primebench/internal/schedule"
)

// GetSchedulersToRun determines which scheduling strategies should be
// executed for the requested mode.
//
// For "all", the sequential baseline is placed first: the speedup ratio is
// defined against it, and running it before any pool warms caches the same
// way for every invocation.
//
// Parameters:
//   - mode: The requested execution mode, or "all" for a full comparison.
//   - factory: The scheduler factory to retrieve strategies from.
//
// Returns:
//   - []schedule.Scheduler: The strategies to execute, in run order.
func GetSchedulersToRun(mode string, factory schedule.SchedulerFactory) []schedule.Scheduler {
	if strings.EqualFold(mode, "all") {
		names := factory.List()
		sort.SliceStable(names, func(i, j int) bool {
			return baselineRank(names[i]) < baselineRank(names[j])
		})
		schedulers := make([]schedule.Scheduler, 0, len(names))
		for _, name := range names {
			if s, err := factory.Get(name); err == nil {
				schedulers = append(schedulers, s)
			}
		}
		return schedulers
	}
	if s, err := factory.Get(mode); err == nil {
		return []schedule.Scheduler{s}
	}
	return nil
}

func baselineRank(name string) int {
	if strings.EqualFold(name, schedule.SequentialName) {
		return 0
	}
	return 1
}
