// Package history persists completed practice sessions and serves aggregate
// statistics, either through the auth backend's REST API or a local SQLite
// database selected by configuration.
package history
