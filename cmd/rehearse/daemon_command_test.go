package main

import (
	"testing"
)

func TestDaemonStopNotRunning(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, _, err := runCLI(t, []string{"daemon", "stop"}, "/nonexistent/rehearsed.sock", "")
	if err != nil {
		t.Fatalf("daemon stop: %v", err)
	}
	requireContains(t, out, "Daemon is not running")
}

func TestDaemonStopRefusesOwnProcess(t *testing.T) {
	env := setupCLITestEnv(t)

	// The test daemon runs in this process, so stop must refuse to kill it.
	_, _, err := runCLI(t, []string{"daemon", "stop"}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected stop to refuse killing the current process")
	}
	requireContains(t, err.Error(), "refusing to kill current process")
}
