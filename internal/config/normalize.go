package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCapture()
	c.normalizeAnalysis()
	c.normalizeHistory()
	c.normalizeInterview()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.RecordingsDir) == "" {
		c.Paths.RecordingsDir = defaultRecordingsDir
	}
	if c.Paths.RecordingsDir, err = expandPath(c.Paths.RecordingsDir); err != nil {
		return fmt.Errorf("paths.recordings_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SocketPath) == "" {
		c.Paths.SocketPath = defaultSocketPath
	}
	if c.Paths.SocketPath, err = expandPath(c.Paths.SocketPath); err != nil {
		return fmt.Errorf("paths.socket_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCapture() {
	c.Capture.VideoDevice = strings.TrimSpace(c.Capture.VideoDevice)
	c.Capture.AudioDevice = strings.TrimSpace(c.Capture.AudioDevice)
	if c.Capture.AudioDevice == "" {
		c.Capture.AudioDevice = defaultAudioDevice
	}
	if c.Capture.Width <= 0 {
		c.Capture.Width = defaultCaptureWidth
	}
	if c.Capture.Height <= 0 {
		c.Capture.Height = defaultCaptureHeight
	}
	if c.Capture.Framerate <= 0 {
		c.Capture.Framerate = defaultCaptureFramerate
	}
	if c.Capture.StartTimeout <= 0 {
		c.Capture.StartTimeout = defaultCaptureStartTimeout
	}
	if c.Capture.StopTimeout <= 0 {
		c.Capture.StopTimeout = defaultCaptureStopTimeout
	}
}

func (c *Config) normalizeAnalysis() {
	c.Analysis.BaseURL = strings.TrimRight(strings.TrimSpace(c.Analysis.BaseURL), "/")
	if c.Analysis.BaseURL == "" {
		c.Analysis.BaseURL = defaultAnalysisBaseURL
	}
	if c.Analysis.RequestTimeout <= 0 {
		c.Analysis.RequestTimeout = defaultAnalysisTimeout
	}
}

func (c *Config) normalizeHistory() {
	c.History.Backend = strings.ToLower(strings.TrimSpace(c.History.Backend))
	if c.History.Backend == "" {
		c.History.Backend = defaultHistoryBackend
	}
	c.History.BaseURL = strings.TrimRight(strings.TrimSpace(c.History.BaseURL), "/")
	if c.History.BaseURL == "" {
		c.History.BaseURL = defaultHistoryBaseURL
	}
	if c.History.RequestTimeout <= 0 {
		c.History.RequestTimeout = defaultHistoryTimeout
	}
}

func (c *Config) normalizeInterview() {
	c.Interview.DefaultTopic = strings.ToLower(strings.TrimSpace(c.Interview.DefaultTopic))
	if c.Interview.DefaultTopic == "" {
		c.Interview.DefaultTopic = defaultTopic
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
