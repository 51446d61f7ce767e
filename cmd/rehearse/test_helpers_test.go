package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"rehearse/internal/config"
	"rehearse/internal/daemon"
	"rehearse/internal/identity"
	"rehearse/internal/ipc"
	"rehearse/internal/logging"
	"rehearse/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	daemon     *daemon.Daemon
	server     *ipc.Server
	socketPath string
	configPath string
	cancel     context.CancelFunc
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithLocalHistory()}, opts...)...)

	configPath := filepath.Join(homeDir, ".config", "rehearse", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	logger := logging.NewNop()
	d, err := daemon.New(cfg, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv, err := ipc.NewServer(ctx, cfg.Paths.SocketPath, d, logger)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()

	env := &cliTestEnv{
		cfg:        cfg,
		daemon:     d,
		server:     srv,
		socketPath: cfg.Paths.SocketPath,
		configPath: configPath,
		cancel:     cancel,
	}

	t.Cleanup(func() {
		cancel()
		srv.Close()
		_ = d.Close()
	})

	return env
}

func (env *cliTestEnv) signIn(t *testing.T, ident *identity.Identity) {
	t.Helper()
	cache := identity.NewCache(env.cfg.IdentityCachePath())
	if err := cache.Store(ident); err != nil {
		t.Fatalf("seed identity: %v", err)
	}
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
