package config

import (
	"errors"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/primebench/internal/errors"
)

var testModes = []string{"sequential", "parallel"}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("primebench", args, io.Discard, testModes)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Base != 1_000_000 || cfg.Width != 10_000 || cfg.Count != 20 {
		t.Errorf("workload defaults wrong: base=%d width=%d count=%d", cfg.Base, cfg.Width, cfg.Count)
	}
	if cfg.Mode != "all" {
		t.Errorf("Mode = %q, want all", cfg.Mode)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0 (adaptive)", cfg.Workers)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t, "-base", "500", "-width", "100", "-count", "7", "-w", "3", "-m", "parallel", "-timeout", "30s", "-q", "-o", "report.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Base != 500 || cfg.Width != 100 || cfg.Count != 7 {
		t.Errorf("workload flags not applied: %+v", cfg)
	}
	if cfg.Workers != 3 || cfg.Mode != "parallel" || cfg.Timeout != 30*time.Second {
		t.Errorf("execution flags not applied: %+v", cfg)
	}
	if !cfg.Quiet || cfg.OutputFile != "report.txt" {
		t.Errorf("output flags not applied: %+v", cfg)
	}
}

func TestParseConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero width", []string{"-width", "0"}},
		{"negative width", []string{"-width", "-5"}},
		{"negative count", []string{"-count", "-1"}},
		{"negative workers", []string{"-workers", "-2"}},
		{"zero timeout", []string{"-timeout", "0s"}},
		{"bad completion shell", []string{"-completion", "powershell"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			var argErr apperrors.InvalidArgumentError
			if !errors.As(err, &argErr) {
				t.Errorf("expected InvalidArgumentError, got %v", err)
			}
		})
	}
}

func TestParseConfig_UnknownMode(t *testing.T) {
	_, err := parse(t, "-mode", "quantum")
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestParseConfig_ModeCaseInsensitive(t *testing.T) {
	if _, err := parse(t, "-mode", "Sequential"); err != nil {
		t.Errorf("mixed-case mode rejected: %v", err)
	}
}

func TestParseConfig_ModeNormalized(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ALL", "all"},
		{"Sequential", "sequential"},
		{"PARALLEL", "parallel"},
	}
	for _, tt := range tests {
		cfg, err := parse(t, "-mode", tt.input)
		if err != nil {
			t.Fatalf("mode %q rejected: %v", tt.input, err)
		}
		if cfg.Mode != tt.want {
			t.Errorf("mode %q normalized to %q, want %q", tt.input, cfg.Mode, tt.want)
		}
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"WORKERS", "6")
	t.Setenv(EnvPrefix+"MODE", "sequential")
	t.Setenv(EnvPrefix+"QUIET", "yes")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 6 || cfg.Mode != "sequential" || !cfg.Quiet {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"WORKERS", "6")

	cfg, err := parse(t, "-workers", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, the explicit flag must win over the env", cfg.Workers)
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}

func TestApplyAdaptiveWorkers(t *testing.T) {
	t.Parallel()

	resolved := ApplyAdaptiveWorkers(AppConfig{Workers: 0})
	if resolved.Workers < 1 {
		t.Errorf("adaptive Workers = %d, want >= 1", resolved.Workers)
	}

	explicit := ApplyAdaptiveWorkers(AppConfig{Workers: 5})
	if explicit.Workers != 5 {
		t.Errorf("explicit Workers = %d, must pass through untouched", explicit.Workers)
	}
}
