package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI escape sequences for error reporting.
// It decouples this package from the presentation layer; the CLI passes
// its theme-backed implementation, the TUI passes nil to disable colors.
type ColorProvider interface {
	// Red returns the escape code for error text.
	Red() string
	// Yellow returns the escape code for warning text.
	Yellow() string
	// Reset returns the escape code that clears formatting.
	Reset() string
}

// noColor is the fallback used when no ColorProvider is supplied.
type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }

// HandleBenchmarkError inspects a benchmark execution error, writes a
// user-facing description to out, and maps the error to a process exit code.
//
// The mapping follows the application's exit code contract: timeouts map to
// ExitErrorTimeout, cancellations to ExitErrorCanceled, configuration and
// argument errors to ExitErrorConfig, and anything else (including worker
// failures) to ExitErrorGeneric.
//
// Parameters:
//   - err: The error to handle. A nil error yields ExitSuccess.
//   - elapsed: How long the operation ran before failing (shown for timeouts).
//   - out: The writer for the error description.
//   - colors: The color provider for output styling (nil disables colors).
//
// Returns:
//   - int: The exit code corresponding to the error class.
func HandleBenchmarkError(err error, elapsed time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColor{}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sTimeout:%s benchmark aborted after %s: %v\n",
			colors.Red(), colors.Reset(), elapsed, err)
		return ExitErrorTimeout

	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCanceled:%s benchmark interrupted after %s\n",
			colors.Yellow(), colors.Reset(), elapsed)
		return ExitErrorCanceled
	}

	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		fmt.Fprintf(out, "%sTimeout:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorTimeout
	}

	var argErr InvalidArgumentError
	if errors.As(err, &argErr) {
		fmt.Fprintf(out, "%sInvalid argument:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorConfig
	}

	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(out, "%sConfiguration error:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorConfig
	}

	var workerErr WorkerFailureError
	if errors.As(err, &workerErr) {
		fmt.Fprintf(out, "%sWorker failure:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorGeneric
	}

	fmt.Fprintf(out, "%sError:%s %v\n", colors.Red(), colors.Reset(), err)
	return ExitErrorGeneric
}
