package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/primebench/internal/format"
	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/progress"
)

// DisplayProgress consumes progress updates and renders a spinner with an
// aggregated progress bar and ETA. It runs until progressChan is closed and
// must be started in its own goroutine.
//
// Parameters:
//   - wg: A WaitGroup to signal when display is complete.
//   - progressChan: Channel receiving updates from the running modes.
//   - numExecutions: The number of execution modes being tracked.
//   - out: The writer for progress output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numExecutions int, out io.Writer) {
	defer wg.Done()

	aggregator := orchestration.NewProgressAggregator(numExecutions)
	if aggregator == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	render := func() {
		bar := format.FormatProgressBarWithETA(aggregator.CalculateAverage(), aggregator.GetETA(), ProgressBarWidth)
		sp.UpdateSuffix(" " + bar)
	}
	render()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				sp.Stop()
				// Pad past the previous bar so no fragment survives.
				fmt.Fprintf(out, "\rAll executions complete.%*s\n", ProgressBarWidth, "")
				return
			}
			aggregator.Update(update)
		case <-ticker.C:
			render()
		}
	}
}
