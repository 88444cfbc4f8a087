// Package ui provides theme and color support for the presentation layers.
// It defines the ANSI color schemes used by the CLI output and the lipgloss
// palette used by the TUI, behind a switchable current theme so NO_COLOR and
// the -no-color flag can disable styling globally.
package ui
