package main

import (
	"encoding/json"
	"testing"
)

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Daemon ==")
	requireContains(t, out, "Running")
	requireContains(t, out, "== Interview ==")
	requireContains(t, out, "HR Interview")
}

func TestStatusCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status", "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status --json: %v", err)
	}

	var decoded struct {
		Running   bool `json:"running"`
		Interview struct {
			State string `json:"state"`
		} `json:"interview"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode status JSON: %v\n%s", err, out)
	}
	if !decoded.Running {
		t.Fatal("expected running daemon in JSON status")
	}
	if decoded.Interview.State != "selecting_question" {
		t.Fatalf("unexpected interview state: %s", decoded.Interview.State)
	}
}

func TestStatusCommandDaemonDown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, _, err := runCLI(t, []string{"status"}, "/nonexistent/rehearsed.sock", "")
	if err != nil {
		t.Fatalf("status with daemon down should not error: %v", err)
	}
	requireContains(t, out, "Not running")
}
