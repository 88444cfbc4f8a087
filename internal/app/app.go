package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/primebench/internal/calibration"
	"github.com/agbru/primebench/internal/cli"
	"github.com/agbru/primebench/internal/config"
	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/logging"
	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/schedule"
	"github.com/agbru/primebench/internal/tui"
	"github.com/agbru/primebench/internal/ui"
)

// Application represents the primebench application instance.
type Application struct {
	Config    config.AppConfig
	Factory   schedule.SchedulerFactory
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom SchedulerFactory for the application.
func WithFactory(f schedule.SchedulerFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger sets a custom Logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "primebench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	// Mode names do not depend on the pool size, so a placeholder factory
	// is enough to validate -mode before the worker count is resolved.
	availableModes := schedule.NewDefaultFactory(1).List()
	if app.Factory != nil {
		availableModes = app.Factory.List()
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableModes)
	if err != nil {
		return nil, err
	}

	cfg = resolveWorkers(cfg)

	if app.Factory == nil {
		app.Factory = schedule.NewDefaultFactory(cfg.Workers)
	}
	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "app")
	}

	app.Config = cfg
	return app, nil
}

// resolveWorkers fills in the pool size when the user did not pin one:
// a calibration profile recorded on this hardware wins, otherwise the
// adaptive CPU-based default applies.
func resolveWorkers(cfg config.AppConfig) config.AppConfig {
	if cfg.Workers > 0 {
		return cfg
	}
	if profile, err := calibration.LoadProfile(profilePath(cfg)); err == nil && profile.MatchesHardware() {
		cfg.Workers = profile.Workers
		return cfg
	}
	return config.ApplyAdaptiveWorkers(cfg)
}

// profilePath returns the calibration profile location, preferring the
// explicitly configured one.
func profilePath(cfg config.AppConfig) string {
	if cfg.CalibrationProfile != "" {
		return cfg.CalibrationProfile
	}
	path, err := calibration.DefaultProfilePath()
	if err != nil {
		return ""
	}
	return path
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	if a.Config.TUI {
		return a.runTUI(ctx)
	}

	return a.runBench(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	availableModes := a.Factory.List()
	if err := cli.GenerateCompletion(out, a.Config.Completion, availableModes); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration sweeps the worker ladder and persists the winning pool
// size so later runs can pick it up.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	bestWorkers, err := calibration.Run(ctx, a.Config, out)
	if err != nil {
		return apperrors.HandleBenchmarkError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	path := profilePath(a.Config)
	if path == "" {
		fmt.Fprintf(a.ErrWriter, "Warning: no writable profile location, result not saved\n")
		return apperrors.ExitSuccess
	}
	if err := calibration.SaveProfile(calibration.NewProfile(bestWorkers), path); err != nil {
		fmt.Fprintf(a.ErrWriter, "Warning: could not save calibration profile: %v\n", err)
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "Calibration saved to %s\n", path)
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	schedulersToRun := orchestration.GetSchedulersToRun(a.Config.Mode, a.Factory)
	return tui.Run(ctx, schedulersToRun, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
