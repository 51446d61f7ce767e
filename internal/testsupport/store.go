package testsupport

import (
	"testing"

	"rehearse/internal/config"
	"rehearse/internal/history"
)

// MustOpenStore opens a local history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.OpenStore(cfg)
	if err != nil {
		t.Fatalf("history.OpenStore: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
