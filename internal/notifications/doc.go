// Package notifications delivers interview-flow events via ntfy.
//
// The default implementation publishes to the topic configured in config.toml
// and gracefully degrades to a no-op when no topic is set. Per-event toggles
// let users silence recording and scoring chatter while keeping error alerts.
//
// All interview code depends only on the simple Service interface, so
// alternative transports are a single implementation away.
package notifications
