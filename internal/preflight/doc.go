// Package preflight provides readiness checks for the hardware and services
// a practice session depends on.
//
// These checks run in two contexts:
//   - The daemon runs RunAll at startup and logs any failures, so a missing
//     camera or stopped scoring service surfaces immediately.
//   - The CLI "rehearse status" command shows individual check results so a
//     user can diagnose why recording will not start.
//
// Checks never block startup; a failed check is advisory.
package preflight
