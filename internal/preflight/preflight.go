package preflight

import (
	"context"

	"rehearse/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// The daemon runs these at startup and the CLI status command shows them,
// so a user learns about a missing camera or ffmpeg before recording.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Recordings directory", cfg.Paths.RecordingsDir))
	results = append(results, CheckFFmpeg(cfg.FFmpegBinary()))
	results = append(results, CheckCamera(ctx))
	results = append(results, CheckService(ctx, "Analysis service", cfg.Analysis.BaseURL))

	if !cfg.LocalHistory() {
		results = append(results, CheckService(ctx, "Auth backend", cfg.History.BaseURL))
	}

	return results
}
