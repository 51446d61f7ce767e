// Package daemonrun hosts the rehearsed runtime loop shared by the
// standalone daemon binary and the CLI's daemon subcommand.
package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"rehearse/internal/config"
	"rehearse/internal/daemon"
	"rehearse/internal/ipc"
	"rehearse/internal/logging"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// Run starts the rehearse daemon runtime loop and blocks until the context
// is canceled or a termination signal arrives.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}

	runID := time.Now().UTC().Format("20060102T150405Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("rehearsed-%s.log", runID))

	level := opts.LogLevel
	if strings.TrimSpace(level) == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if err := ensureCurrentLogPointer(cfg.Paths.LogDir, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update rehearsed.log link: %v\n", err)
	}
	logDependencySnapshot(logger, cfg)

	if err := writePIDFile(cfg.PIDPath()); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(cfg.PIDPath())

	d, err := daemon.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(signalCtx, cfg.Paths.SocketPath, d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logger.Error("daemon start failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that no other rehearsed instance holds the lock"),
		)
		return err
	}

	<-signalCtx.Done()
	logger.Info("rehearse daemon shutting down")
	return nil
}

func ensureCurrentLogPointer(logDir, target string) error {
	if logDir == "" || target == "" {
		return nil
	}
	current := filepath.Join(logDir, "rehearsed.log")
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

func logDependencySnapshot(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	ffmpeg := cfg.FFmpegBinary()
	logger.Info("dependency snapshot",
		logging.String(logging.FieldEventType, "dependency_snapshot"),
		logging.Bool("ffmpeg_available", binaryAvailable(ffmpeg)),
		logging.String("ffmpeg_binary", ffmpeg),
		logging.String("analysis_url", cfg.Analysis.BaseURL),
		logging.String("history_backend", cfg.History.Backend),
		logging.Bool("notifications_configured", strings.TrimSpace(cfg.Notifications.NtfyTopic) != ""),
	)
}

func binaryAvailable(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}
