package history

import (
	"fmt"
	"time"
)

// Metrics carries the detailed analysis fields persisted alongside a session.
type Metrics struct {
	FacialConfidence int                `json:"facial_confidence"`
	SpeechConfidence int                `json:"speech_confidence"`
	BodyConfidence   int                `json:"body_confidence"`
	VideoDuration    float64            `json:"video_duration,omitempty"`
	FacialBreakdown  map[string]float64 `json:"facial_breakdown,omitempty"`
	SpeechBreakdown  map[string]float64 `json:"speech_breakdown,omitempty"`
	BodyBreakdown    map[string]float64 `json:"body_breakdown,omitempty"`
}

// Record is one persisted, completed practice attempt. Never mutated after
// creation; owned by the persistence backend thereafter.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Topic     string    `json:"topic"`
	Question  string    `json:"question,omitempty"`
	Score     int       `json:"score"`
	Duration  int       `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
	Metrics   *Metrics  `json:"detailed_metrics,omitempty"`
}

// Stats aggregates a user's practice history for display. Retrieval failures
// collapse to the zero value; stats are cosmetic, never fatal.
type Stats struct {
	TotalSessions int `json:"total_sessions"`
	AvgScore      int `json:"avg_score"`
	HighestScore  int `json:"highest_score"`
	TotalDuration int `json:"total_duration"`
}

// Entry is the caller-supplied portion of a new record.
type Entry struct {
	Topic    string
	Question string
	Score    int
	Duration int
	Metrics  *Metrics
}

// PersistenceError marks session-write and history-read failures. These are
// logged by callers but never block or revert an already-displayed score.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("history %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
