// Package config handles command-line and environment configuration for the
// prime-counting benchmark. Priority: CLI flags > environment variables >
// adaptive defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/workload"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "PRIMEBENCH_"

// DefaultTimeout bounds a full benchmark run.
const DefaultTimeout = 5 * time.Minute

// AppConfig holds the resolved configuration of one invocation.
type AppConfig struct {
	// Base is the start of the interval whose primes are counted.
	Base int64
	// Width is the size of each sub-range.
	Width int64
	// Count is the number of sub-ranges.
	Count int
	// Workers is the parallel pool size. 0 selects the adaptive default.
	Workers int
	// Mode selects the execution strategy, or "all" for a full comparison.
	Mode string
	// Timeout bounds the whole run.
	Timeout time.Duration

	// Quiet suppresses progress display and banners.
	Quiet bool
	// Verbose enables debug logging and per-range details.
	Verbose bool
	// TUI enables the interactive terminal dashboard.
	TUI bool
	// NoColor disables ANSI color output.
	NoColor bool

	// OutputFile, when set, receives the full text report.
	OutputFile string
	// MetricsFile, when set, receives the collected metrics in Prometheus
	// text exposition format.
	MetricsFile string

	// Calibrate runs the worker-count sweep instead of the benchmark.
	Calibrate bool
	// CalibrationProfile overrides the default calibration cache path.
	CalibrationProfile string

	// Completion, when set, prints a shell completion script and exits.
	Completion string
}

// ParseConfig parses the command line and applies environment overrides.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The raw arguments, without the program name.
//   - errWriter: The writer for flag parse errors and usage text.
//   - availableModes: The valid values for -mode, excluding "all".
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: A ConfigError or InvalidArgumentError describing the problem.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableModes []string) (AppConfig, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Int64Var(&cfg.Base, "base", workload.DefaultBase, "start of the interval to scan for primes")
	fs.Int64Var(&cfg.Width, "width", workload.DefaultWidth, "size of each sub-range")
	fs.IntVar(&cfg.Count, "count", workload.DefaultCount, "number of sub-ranges")
	fs.IntVar(&cfg.Workers, "workers", 0, "parallel pool size (0 = one per CPU)")
	fs.IntVar(&cfg.Workers, "w", 0, "shorthand for -workers")
	fs.StringVar(&cfg.Mode, "mode", "all", "execution mode: "+strings.Join(availableModes, ", ")+" or all")
	fs.StringVar(&cfg.Mode, "m", "all", "shorthand for -mode")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "global timeout for the run")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress progress display and banners")
	fs.BoolVar(&cfg.Quiet, "q", false, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging and per-range details")
	fs.BoolVar(&cfg.Verbose, "v", false, "shorthand for -verbose")
	fs.BoolVar(&cfg.TUI, "tui", false, "interactive terminal dashboard")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable ANSI colors")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the full report to this file")
	fs.StringVar(&cfg.OutputFile, "o", "", "shorthand for -output")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "dump collected metrics to this file")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "sweep worker counts and cache the best")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "path of the calibration cache file")
	fs.StringVar(&cfg.Completion, "completion", "", "print a completion script for bash, zsh or fish")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Counts primes in a partitioned interval sequentially and on a worker\npool, then compares the two wall-clock times.\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment variables (%s prefix) override unset flags:\n", strings.TrimSuffix(EnvPrefix, "_"))
		fmt.Fprintf(errWriter, "  BASE, WIDTH, COUNT, WORKERS, MODE, TIMEOUT, QUIET, VERBOSE, TUI,\n  NO_COLOR, OUTPUT, METRICS_FILE, CALIBRATE, CALIBRATION_PROFILE\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.ConfigError{Message: err.Error()}
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg, availableModes); err != nil {
		return AppConfig{}, err
	}
	// Canonical form: consumers compare mode names without re-folding case.
	cfg.Mode = strings.ToLower(cfg.Mode)
	return cfg, nil
}

func validate(cfg AppConfig, availableModes []string) error {
	if cfg.Width <= 0 {
		return apperrors.NewInvalidArgumentError("width", "must be a positive range size")
	}
	if cfg.Count < 0 {
		return apperrors.NewInvalidArgumentError("count", "must not be negative")
	}
	if cfg.Workers < 0 {
		return apperrors.NewInvalidArgumentError("workers", "must be positive, or 0 for the adaptive default")
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewInvalidArgumentError("timeout", "must be a positive duration")
	}
	if cfg.Completion != "" {
		switch cfg.Completion {
		case "bash", "zsh", "fish":
		default:
			return apperrors.NewInvalidArgumentError("completion", "supported shells are bash, zsh and fish")
		}
		// A completion request short-circuits mode validation.
		return nil
	}

	mode := strings.ToLower(cfg.Mode)
	if mode == "all" {
		return nil
	}
	for _, m := range availableModes {
		if strings.EqualFold(m, mode) {
			return nil
		}
	}
	sorted := append([]string(nil), availableModes...)
	sort.Strings(sorted)
	return apperrors.ConfigError{
		Message: fmt.Sprintf("unknown mode %q (available: %s, all)", cfg.Mode, strings.Join(sorted, ", ")),
	}
}
