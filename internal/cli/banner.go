package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/primebench/internal/config"
	"github.com/agbru/primebench/internal/schedule"
	"github.com/agbru/primebench/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the
// user: the interval under test, the partition shape, the pool size and the
// environment.
//
// Parameters:
//   - cfg: The application configuration, with the worker count resolved.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	end := cfg.Base + cfg.Width*int64(cfg.Count)
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Counting primes in %s[%d, %d)%s split into %s%d%s ranges of %s%d%s, timeout %s%s%s.\n",
		ui.ColorMagenta(), cfg.Base, end, ui.ColorReset(),
		ui.ColorCyan(), cfg.Count, ui.ColorReset(),
		ui.ColorCyan(), cfg.Width, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, pool size %s%d%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single strategy vs full
// comparison).
//
// Parameters:
//   - schedulers: The strategies that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(schedulers []schedule.Scheduler, out io.Writer) {
	if len(schedulers) == 0 {
		fmt.Fprintf(out, "Execution mode: none resolved.\n")
		return
	}
	var modeDesc string
	if len(schedulers) > 1 {
		modeDesc = "Comparison of all execution modes"
	} else {
		modeDesc = fmt.Sprintf("Single run with the %s%s%s mode",
			ui.ColorGreen(), schedulers[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
