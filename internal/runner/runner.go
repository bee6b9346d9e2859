// Package runner shells out to the per-game scraper binaries so the bot
// can refresh snapshots on demand.
package runner

import (
	"context"
	"os/exec"
	"time"

	"github.com/pfrederiksen/gacha-events/internal/logger"
)

// Result is the outcome of one scraper invocation.
type Result struct {
	Binary   string
	Success  bool
	Output   string
	Duration time.Duration
	Err      error
}

// Run executes a scraper binary and waits for it to finish. The combined
// output is captured for logging; a non-zero exit is a failed Result, not
// an error in the Go sense, since one game failing should not stop the
// other from refreshing.
func Run(ctx context.Context, binary string, args ...string) Result {
	start := time.Now()

	cmd := exec.CommandContext(ctx, binary, args...)
	out, err := cmd.CombinedOutput()

	res := Result{
		Binary:   binary,
		Success:  err == nil,
		Output:   string(out),
		Duration: time.Since(start),
		Err:      err,
	}

	if err != nil {
		logger.Error("scraper run failed", logger.Fields{
			"binary":   binary,
			"duration": res.Duration.String(),
		}, err)
	} else {
		logger.Info("scraper run finished", logger.Fields{
			"binary":   binary,
			"duration": res.Duration.String(),
		})
	}
	logger.RecordTiming("runner.scrape", res.Duration)

	return res
}

// RunAll executes each binary in sequence and returns all results. The
// scrapers share a rate-limited upstream, so they are deliberately not
// run concurrently.
func RunAll(ctx context.Context, binaries ...string) []Result {
	results := make([]Result, 0, len(binaries))
	for _, binary := range binaries {
		results = append(results, Run(ctx, binary))
	}
	return results
}
