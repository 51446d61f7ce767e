// Package daemon coordinates the long-running rehearse process and system
// integration points.
//
// It wires configuration, the capture session, the interview controller, the
// history backend and the camera hotplug monitor into a single lifecycle with
// flock-based locking to prevent multiple instances owning the camera. The
// daemon also fronts the identity cache for login state shared between CLI
// invocations.
//
// Keep orchestration logic here: the interview state machine lives in
// internal/interview while the daemon focuses on startup, shutdown and
// wiring.
package daemon
