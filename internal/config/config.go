package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and socket configuration.
type Paths struct {
	RecordingsDir string `toml:"recordings_dir"`
	StateDir      string `toml:"state_dir"`
	LogDir        string `toml:"log_dir"`
	SocketPath    string `toml:"socket_path"`
}

// Capture contains configuration for webcam/microphone recording.
type Capture struct {
	// VideoDevice pins capture to a specific node (e.g. /dev/video0).
	// When empty the daemon selects a camera per recording attempt.
	VideoDevice  string `toml:"video_device"`
	AudioDevice  string `toml:"audio_device"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Framerate    int    `toml:"framerate"`
	StartTimeout int    `toml:"start_timeout"`
	StopTimeout  int    `toml:"stop_timeout"`
}

// StartDeadline returns how long to wait for ffmpeg to begin producing
// output before declaring the devices unavailable.
func (c Capture) StartDeadline() time.Duration {
	if c.StartTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.StartTimeout) * time.Second
}

// StopDeadline returns how long to wait for ffmpeg to finalize the container
// after the stop signal before killing it.
func (c Capture) StopDeadline() time.Duration {
	if c.StopTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.StopTimeout) * time.Second
}

// Analysis contains configuration for the remote scoring service.
type Analysis struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// History contains configuration for session persistence.
type History struct {
	// Backend selects where completed sessions are stored: "remote" posts to
	// the auth backend, "local" keeps a SQLite database under state_dir.
	Backend        string `toml:"backend"`
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Interview contains configuration for the practice-session flow.
type Interview struct {
	// AutoSubmit sends the recording for analysis as soon as it stops.
	// When false the user triggers analysis explicitly via submit.
	AutoSubmit   bool   `toml:"auto_submit"`
	DefaultTopic string `toml:"default_topic"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Recording      bool   `toml:"recording"`
	Scored         bool   `toml:"scored"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for rehearse.
//
// Configuration sections by subsystem:
//   - Paths: recordings/state/log directories and the IPC socket
//   - Capture: camera and microphone recording parameters
//   - Analysis: remote scoring endpoint
//   - History: session persistence backend (remote or local SQLite)
//   - Interview: practice-flow policy knobs
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Capture       Capture       `toml:"capture"`
	Analysis      Analysis      `toml:"analysis"`
	History       History       `toml:"history"`
	Interview     Interview     `toml:"interview"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/rehearse/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("rehearse.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.RecordingsDir, c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the recorder executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// LockPath returns the daemon instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "rehearsed.lock")
}

// PIDPath returns the daemon process id file location.
func (c *Config) PIDPath() string {
	return filepath.Join(c.Paths.StateDir, "rehearsed.pid")
}

// IdentityCachePath returns the current-identity cache file location.
func (c *Config) IdentityCachePath() string {
	return filepath.Join(c.Paths.StateDir, "current_user.json")
}

// HistoryDBPath returns the local session database location.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.StateDir, "sessions.db")
}

// LocalHistory reports whether sessions persist to the local SQLite store.
func (c *Config) LocalHistory() bool {
	return strings.EqualFold(strings.TrimSpace(c.History.Backend), "local")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
