package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primebench/internal/config"
	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/format"
	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/prime"
	"github.com/agbru/primebench/internal/schedule"
	"github.com/agbru/primebench/internal/sysmon"
	"github.com/agbru/primebench/internal/workload"
)

// Messages exchanged between the bridge goroutines and the model.
type (
	// ProgressMsg carries one aggregated progress update.
	ProgressMsg struct {
		SchedulerIndex  int
		Value           float64
		AverageProgress float64
		ETA             time.Duration
	}
	// ProgressDoneMsg signals that the progress channel was closed.
	ProgressDoneMsg struct{}
	// ComparisonResultsMsg carries the per-mode outcomes.
	ComparisonResultsMsg struct{ Results []orchestration.ModeResult }
	// SummaryMsg carries the totals and the speedup verdict.
	SummaryMsg struct{ Summary orchestration.Summary }
	// ErrorMsg reports a failed run.
	ErrorMsg struct {
		Err      error
		Duration time.Duration
	}
	// TickMsg drives periodic refresh of the resource panel.
	TickMsg time.Time
	// SysStatsMsg carries a system resource sample.
	SysStatsMsg struct {
		CPUPercent   float64
		MemPercent   float64
		NumGoroutine int
	}
	// BenchmarkCompleteMsg signals that the orchestration finished.
	BenchmarkCompleteMsg struct {
		ExitCode   int
		Generation uint64
	}
	// ContextCancelledMsg signals outer-context cancellation.
	ContextCancelledMsg struct {
		Err        error
		Generation uint64
	}
)

// progressBarWidth is the width of the dashboard progress bar.
const progressBarWidth = 34

// Model is the root bubbletea model for the dashboard.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	parentCtx  context.Context
	schedulers []schedule.Scheduler
	cfg        config.AppConfig
	version    string
	ref        *programRef
	keymap     KeyMap

	generation uint64
	startTime  time.Time
	width      int
	height     int

	avgProgress float64
	eta         time.Duration
	results     []orchestration.ModeResult
	summary     *orchestration.Summary
	runErr      error
	sys         SysStatsMsg

	done     bool
	exitCode int
}

// NewModel creates the dashboard model for the given run.
func NewModel(parentCtx context.Context, schedulers []schedule.Scheduler, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		parentCtx:  parentCtx,
		schedulers: schedulers,
		cfg:        cfg,
		version:    version,
		ref:        &programRef{},
		keymap:     DefaultKeyMap(),
		startTime:  time.Now(),
		exitCode:   apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startBenchmarkCmd(m.ctx, m.ref, m.schedulers, m.cfg, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ProgressMsg:
		m.avgProgress = msg.AverageProgress
		m.eta = msg.ETA
		return m, nil

	case ProgressDoneMsg:
		m.avgProgress = 1.0
		m.eta = 0
		return m, nil

	case ComparisonResultsMsg:
		m.results = msg.Results
		return m, nil

	case SummaryMsg:
		s := msg.Summary
		m.summary = &s
		return m, nil

	case ErrorMsg:
		m.runErr = msg.Err
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.sys = msg
		return m, nil

	case BenchmarkCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.done = true
		m.exitCode = msg.ExitCode
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Restart):
		if !m.done {
			return m, nil // no restart while a run is in flight
		}
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel
		m.startTime = time.Now()
		m.avgProgress = 0
		m.eta = 0
		m.results = nil
		m.summary = nil
		m.runErr = nil
		m.done = false
		m.exitCode = apperrors.ExitSuccess
		return m, tea.Batch(
			tickCmd(),
			startBenchmarkCmd(m.ctx, m.ref, m.schedulers, m.cfg, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := headerStyle.Render("primebench") + " " + versionStyle.Render(m.version) +
		"  " + m.statusLine()

	end := m.cfg.Base + m.cfg.Width*int64(m.cfg.Count)
	workloadLine := fmt.Sprintf("%s %s",
		metricLabelStyle.Render("Interval"),
		metricValueStyle.Render(fmt.Sprintf("[%d, %d) in %d ranges, %d workers",
			m.cfg.Base, end, m.cfg.Count, m.cfg.Workers)))

	progressLine := progressStyle.Render(
		format.FormatProgressBarWithETA(m.avgProgress, m.eta, progressBarWidth))

	sysLine := fmt.Sprintf("%s %s   %s %s   %s %s",
		metricLabelStyle.Render("CPU"),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.sys.CPUPercent)),
		metricLabelStyle.Render("Mem"),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.sys.MemPercent)),
		metricLabelStyle.Render("Goroutines"),
		metricValueStyle.Render(fmt.Sprintf("%d", m.sys.NumGoroutine)))

	body := lipgloss.JoinVertical(lipgloss.Left,
		workloadLine,
		progressLine,
		sysLine,
		m.resultsView(),
	)

	footer := footerKeyStyle.Render("q") + footerDescStyle.Render(" quit  ") +
		footerKeyStyle.Render("r") + footerDescStyle.Render(" restart (when done)")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		panelStyle.Width(m.panelWidth()).Render(body),
		footer,
	)
}

func (m Model) panelWidth() int {
	if m.width > 4 {
		return m.width - 2
	}
	return m.width
}

func (m Model) statusLine() string {
	switch {
	case m.runErr != nil:
		return statusErrorStyle.Render("FAILED")
	case m.done:
		return statusDoneStyle.Render("DONE") + " " + versionStyle.Render(time.Since(m.startTime).Round(time.Millisecond).String())
	default:
		return statusRunningStyle.Render("RUNNING") + " " + versionStyle.Render(time.Since(m.startTime).Round(time.Second).String())
	}
}

func (m Model) resultsView() string {
	if m.runErr != nil {
		return errorStyle.Render(fmt.Sprintf("error: %v", m.runErr))
	}
	if len(m.results) == 0 {
		return metricLabelStyle.Render("waiting for results...")
	}

	lines := make([]string, 0, len(m.results)+2)
	for _, res := range m.results {
		if res.Err != nil {
			lines = append(lines, fmt.Sprintf("%s %s",
				modeStyle.Render(res.Name),
				errorStyle.Render(fmt.Sprintf("failed: %v", res.Err))))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s primes in %s",
			modeStyle.Render(res.Name),
			metricValueStyle.Render(fmt.Sprintf("%d", res.TotalPrimes())),
			successStyle.Render(format.FormatExecutionDuration(res.Duration))))
	}

	if m.summary != nil && m.summary.HasSpeedup {
		verdict := "too short to measure"
		if m.summary.Measurable {
			verdict = format.FormatSpeedup(m.summary.Speedup)
		}
		lines = append(lines, fmt.Sprintf("%s %s",
			metricLabelStyle.Render("Speedup"),
			metricValueStyle.Render(verdict)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, schedulers []schedule.Scheduler, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, schedulers, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startBenchmarkCmd returns a tea.Cmd that launches the orchestration.
func startBenchmarkCmd(ctx context.Context, ref *programRef, schedulers []schedule.Scheduler, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ranges, err := workload.Partition(cfg.Base, cfg.Width, cfg.Count)
		if err != nil {
			ref.Send(ErrorMsg{Err: err})
			return BenchmarkCompleteMsg{ExitCode: apperrors.ExitErrorConfig, Generation: gen}
		}
		items := workload.Items(ranges)

		progressReporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := orchestration.ExecuteBenchmark(ctx, schedulers, items, prime.CountInRange, progressReporter, io.Discard, orchestration.BenchmarkOptions{})
		exitCode := orchestration.AnalyzeBenchmarkResults(results, presenter, presenter, io.Discard)

		return BenchmarkCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent:   s.CPUPercent,
			MemPercent:   s.MemPercent,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
