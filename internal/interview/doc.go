// Package interview implements the practice-session state machine that ties
// question selection, webcam capture, analysis submission and history
// persistence together.
//
// The flow moves SelectingQuestion -> Ready -> Recording -> Stopped ->
// Analyzing -> Scored. Camera selection runs fresh before every recording,
// a failed submission parks the artifact in Stopped for an explicit retry,
// and each scored result writes to history at most once. Persistence and
// notification failures are logged but never disturb a displayed score.
package interview
