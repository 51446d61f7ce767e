// Package daemonctl orchestrates the rehearsed process from the CLI:
// launching a detached daemon, waiting for its socket, and stopping it.
package daemonctl

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"rehearse/internal/config"
	"rehearse/internal/ipc"
)

// ErrDaemonNotRunning indicates daemon IPC is unavailable.
var ErrDaemonNotRunning = errors.New("daemon not running")

// LaunchOptions controls daemon process launch behavior.
type LaunchOptions struct {
	ConfigPath string
	LogLevel   string
}

// Launch starts a detached rehearse daemon process.
func Launch(executablePath string, opts LaunchOptions) error {
	if strings.TrimSpace(executablePath) == "" {
		return fmt.Errorf("resolve executable: executable path is empty")
	}

	args := []string{"daemon", "run"}
	if cfgPath := strings.TrimSpace(opts.ConfigPath); cfgPath != "" {
		args = append(args, "--config", cfgPath)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		args = append(args, "--log-level", level)
	}

	proc := exec.Command(executablePath, args...)
	if err := proc.Start(); err != nil {
		return fmt.Errorf("launch daemon: %w", err)
	}
	return proc.Process.Release()
}

// WaitForClient waits for IPC socket availability and returns a connected client.
func WaitForClient(socketPath string, timeout time.Duration) (*ipc.Client, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		client, err := ipc.Dial(socketPath)
		if err == nil {
			return client, nil
		}
		lastErr = err
		time.Sleep(200 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for daemon")
	}
	return nil, fmt.Errorf("daemon failed to start: %w", lastErr)
}

// EnsureStarted launches the daemon when its socket is unreachable. Returns
// true when a new process was launched.
func EnsureStarted(socketPath, executablePath string, opts LaunchOptions, waitTimeout time.Duration) (bool, error) {
	client, err := ipc.Dial(socketPath)
	if err == nil {
		_ = client.Close()
		return false, nil
	}
	if err := Launch(executablePath, opts); err != nil {
		return false, err
	}
	client, err = WaitForClient(socketPath, waitTimeout)
	if err != nil {
		return true, err
	}
	_ = client.Close()
	return true, nil
}

// ProcessInfo reports whether daemon IPC is reachable and the daemon PID
// when available.
func ProcessInfo(socketPath string) (bool, int, error) {
	client, err := ipc.Dial(socketPath)
	if err != nil {
		if isDaemonUnavailable(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	defer client.Close()
	status, statusErr := client.Status()
	if statusErr != nil {
		return true, 0, statusErr
	}
	pid := 0
	if status != nil {
		pid = status.PID
	}
	return true, pid, nil
}

// WaitForShutdown waits for daemon IPC to disappear.
func WaitForShutdown(socketPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		reachable, _, err := ProcessInfo(socketPath)
		if !reachable && err == nil {
			return nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("daemon still running")
		}
		time.Sleep(200 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for shutdown")
	}
	return fmt.Errorf("daemon did not stop: %w", lastErr)
}

// ReadPID reads the daemon pid file. Returns 0 with no error when the file
// does not exist.
func ReadPID(pidPath string) (int, error) {
	data, err := os.ReadFile(pidPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read daemon pid file %q: %w", pidPath, err)
	}
	pidStr := strings.TrimSpace(string(data))
	if pidStr == "" {
		return 0, nil
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid %q in %s", pidStr, pidPath)
	}
	return pid, nil
}

// StopResult captures daemon stop/termination outcome.
type StopResult struct {
	Signaled   bool
	ForcedKill bool
	PID        int
}

// StopAndTerminate signals the daemon to exit and force-kills the process
// when it is still alive after gracePeriod.
func StopAndTerminate(cfg *config.Config, gracePeriod time.Duration) (StopResult, error) {
	if cfg == nil {
		return StopResult{}, errors.New("configuration not available")
	}

	reachable, livePID, err := ProcessInfo(cfg.Paths.SocketPath)
	if err != nil {
		reachable = true
	}
	pid, pidErr := ReadPID(cfg.PIDPath())
	if pidErr != nil {
		return StopResult{}, pidErr
	}
	if pid == 0 {
		pid = livePID
	}
	if !reachable && pid == 0 {
		return StopResult{}, ErrDaemonNotRunning
	}
	if pid == 0 {
		return StopResult{}, fmt.Errorf("unable to determine daemon pid (pid file: %s)", cfg.PIDPath())
	}
	if pid == os.Getpid() {
		return StopResult{}, fmt.Errorf("refusing to kill current process (pid %d)", pid)
	}

	result := StopResult{PID: pid}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return result, fmt.Errorf("locate daemon process %d: %w", pid, err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH) {
			cleanupRuntimeFiles(cfg)
			return result, nil
		}
		return result, fmt.Errorf("signal daemon process %d: %w", pid, err)
	}
	result.Signaled = true

	if err := WaitForShutdown(cfg.Paths.SocketPath, gracePeriod); err == nil {
		cleanupRuntimeFiles(cfg)
		return result, nil
	}

	if err := proc.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return result, fmt.Errorf("kill daemon process %d: %w", pid, err)
	}
	result.ForcedKill = true
	cleanupRuntimeFiles(cfg)
	return result, nil
}

func cleanupRuntimeFiles(cfg *config.Config) {
	_ = os.Remove(cfg.PIDPath())
	_ = os.Remove(cfg.Paths.SocketPath)
}

func isDaemonUnavailable(err error) bool {
	return os.IsNotExist(err) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, syscall.ENOENT) ||
		errors.Is(err, syscall.ECONNREFUSED)
}
