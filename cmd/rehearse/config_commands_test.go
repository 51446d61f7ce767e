package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}

	out, _, err = runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, env.cfg.Paths.RecordingsDir)
}
