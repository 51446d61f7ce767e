package testsupport

import (
	"path/filepath"
	"testing"

	"rehearse/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Notifications are disabled so tests never reach out to ntfy.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.RecordingsDir = filepath.Join(base, "recordings")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.SocketPath = filepath.Join(base, "rehearsed.sock")
	cfg.Notifications.NtfyTopic = ""

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithLocalHistory switches the test config to the SQLite history backend.
func WithLocalHistory() ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.Backend = "local"
	}
}

// WithManualSubmit disables auto-submit so tests drive analysis explicitly.
func WithManualSubmit() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Interview.AutoSubmit = false
	}
}

// WithAnalysisURL points the analysis client at a test server.
func WithAnalysisURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Analysis.BaseURL = url
	}
}

// WithHistoryURL points the history backend at a test server.
func WithHistoryURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.Backend = "remote"
		cfg.History.BaseURL = url
	}
}
