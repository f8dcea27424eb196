package preflight

import (
	"context"

	"podfeed/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckFeed("Feed file", cfg.Paths.FeedFile))
	results = append(results, CheckEpisodesDir("Episodes directory", cfg.Paths.EpisodesDir))
	results = append(results, CheckFFprobe(ctx, cfg))
	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
