package config

import (
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCapture(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCapture() error {
	if c.Capture.Width <= 0 || c.Capture.Height <= 0 {
		return fmt.Errorf("capture.width and capture.height must be positive, got %dx%d", c.Capture.Width, c.Capture.Height)
	}
	if c.Capture.Framerate <= 0 {
		return fmt.Errorf("capture.framerate must be positive, got %d", c.Capture.Framerate)
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if _, err := url.ParseRequestURI(c.Analysis.BaseURL); err != nil {
		return fmt.Errorf("analysis.base_url %q is not a valid URL: %w", c.Analysis.BaseURL, err)
	}
	return nil
}

func (c *Config) validateHistory() error {
	switch c.History.Backend {
	case "remote", "local":
	default:
		return fmt.Errorf("history.backend must be \"remote\" or \"local\", got %q", c.History.Backend)
	}
	if c.History.Backend == "remote" {
		if _, err := url.ParseRequestURI(c.History.BaseURL); err != nil {
			return fmt.Errorf("history.base_url %q is not a valid URL: %w", c.History.BaseURL, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
