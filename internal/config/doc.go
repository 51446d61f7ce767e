// Package config loads, normalizes, and validates rehearse configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// daemon and CLI need: capture parameters, the scoring endpoint, session
// persistence, and notification settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
