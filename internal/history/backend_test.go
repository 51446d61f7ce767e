package history_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rehearse/internal/config"
	"rehearse/internal/history"
)

func newBackend(t *testing.T, handler http.Handler) *history.BackendRecorder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.History.BaseURL = server.URL
	return history.NewBackendRecorder(&cfg)
}

func TestBackendRecord(t *testing.T) {
	var captured map[string]any
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/session" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"session": map[string]any{
				"id":      "rec-1",
				"user_id": "u-1",
				"topic":   "HR Interview",
				"score":   82,
			},
		})
	}))

	record, err := backend.Record(context.Background(), testIdentity(), history.Entry{
		Topic:    "HR Interview",
		Question: "Tell me about yourself.",
		Score:    82,
		Duration: 30,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if record.ID != "rec-1" {
		t.Fatalf("unexpected record id %q", record.ID)
	}
	if captured["user_id"] != "u-1" || captured["question"] != "Tell me about yourself." {
		t.Fatalf("unexpected request body: %#v", captured)
	}
}

func TestBackendRecordFailure(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))

	_, err := backend.Record(context.Background(), testIdentity(), history.Entry{Topic: "HR Interview", Score: 50, Duration: 10})
	var perr *history.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}

func TestBackendRecordServerError(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := backend.Record(context.Background(), testIdentity(), history.Entry{Topic: "HR Interview", Score: 50, Duration: 10})
	var perr *history.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}

func TestBackendStats(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/user/u-1/stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"stats": map[string]any{
				"total_sessions": 4,
				"avg_score":      71,
				"highest_score":  90,
				"total_duration": 120,
			},
		})
	}))

	stats, err := backend.Stats(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalSessions != 4 || stats.HighestScore != 90 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
}

func TestBackendSessions(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/user/u-1/sessions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"sessions": []map[string]any{
				{"id": "rec-2", "topic": "Technical Interview", "score": 64},
				{"id": "rec-1", "topic": "HR Interview", "score": 82},
			},
		})
	}))

	sessions, err := backend.Sessions(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != "rec-2" {
		t.Fatalf("unexpected sessions: %#v", sessions)
	}
}
