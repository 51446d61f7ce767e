package ipc

import (
	"rehearse/internal/analysis"
	"rehearse/internal/history"
	"rehearse/internal/identity"
	"rehearse/internal/interview"
	"rehearse/internal/preflight"
	"rehearse/internal/questions"
)

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// Check mirrors a preflight result for status displays.
type Check = preflight.Result

// StatusResponse represents combined daemon and interview-flow status.
type StatusResponse struct {
	Running   bool               `json:"running"`
	PID       int                `json:"pid"`
	LockPath  string             `json:"lock_path"`
	Interview interview.Snapshot `json:"interview"`
	Identity  *identity.Identity `json:"identity,omitempty"`
	Checks    []Check            `json:"checks"`
}

// NewQuestionRequest draws a fresh question from the active topic.
type NewQuestionRequest struct{}

// NewQuestionResponse carries the selected question.
type NewQuestionResponse struct {
	Question questions.Question `json:"question"`
}

// TopicListRequest fetches the available topics.
type TopicListRequest struct{}

// TopicListResponse lists topic keys.
type TopicListResponse struct {
	Topics []string `json:"topics"`
	Active string   `json:"active"`
}

// TopicRequest switches the active interview topic.
type TopicRequest struct {
	Topic string `json:"topic"`
}

// TopicResponse confirms the new topic.
type TopicResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// StartRequest begins recording the current question's answer.
type StartRequest struct{}

// StartResponse reports the camera the recording uses.
type StartResponse struct {
	Device   string `json:"device"`
	Question string `json:"question"`
}

// StopRequest finalizes the active recording.
type StopRequest struct{}

// StopResponse reports the stop outcome. Result is set when auto-submit
// scored the recording inline.
type StopResponse struct {
	State     string           `json:"state"`
	Submitted bool             `json:"submitted"`
	Result    *analysis.Result `json:"result,omitempty"`
}

// SubmitRequest sends a recording for analysis. Path selects a pre-recorded
// file; empty means the recording stopped in this session.
type SubmitRequest struct {
	Path string `json:"path,omitempty"`
}

// SubmitResponse carries the analysis result.
type SubmitResponse struct {
	Result *analysis.Result `json:"result"`
}

// ResetRequest abandons the current attempt, keeping the question.
type ResetRequest struct{}

// ResetResponse reports the state after reset.
type ResetResponse struct {
	State string `json:"state"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest registers a new account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogoutRequest clears the cached identity.
type LogoutRequest struct{}

// LogoutResponse acknowledges logout.
type LogoutResponse struct {
	LoggedOut bool `json:"logged_out"`
}

// WhoAmIRequest fetches the cached identity.
type WhoAmIRequest struct{}

// IdentityResponse carries an identity; nil when signed out.
type IdentityResponse struct {
	Identity *identity.Identity `json:"identity,omitempty"`
}

// StatsRequest fetches aggregate practice statistics.
type StatsRequest struct{}

// StatsResponse carries the user's aggregate history.
type StatsResponse struct {
	Stats history.Stats `json:"stats"`
}

// SessionsRequest lists the user's practice history.
type SessionsRequest struct{}

// SessionsResponse carries history records, newest first.
type SessionsResponse struct {
	Sessions []history.Record `json:"sessions"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
