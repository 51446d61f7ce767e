// Package logging builds the slog loggers used across the daemon and CLI.
//
// It offers console and JSON handlers, config-driven construction, shared
// structured field keys, and small attr helpers so call sites stay terse.
package logging
