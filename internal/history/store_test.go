package history_test

import (
	"context"
	"errors"
	"testing"

	"rehearse/internal/config"
	"rehearse/internal/history"
	"rehearse/internal/identity"
)

func openTestStore(t *testing.T) *history.Store {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = base
	cfg.Paths.RecordingsDir = base + "/recordings"
	cfg.Paths.LogDir = base + "/logs"

	store, err := history.OpenStore(&cfg)
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testIdentity() *identity.Identity {
	return &identity.Identity{ID: "u-1", Name: "Dana", Email: "dana@example.com"}
}

func TestRecordAndSessions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ident := testIdentity()

	first, err := store.Record(ctx, ident, history.Entry{
		Topic:    "HR Interview",
		Question: "Tell me about yourself.",
		Score:    82,
		Duration: 30,
		Metrics: &history.Metrics{
			FacialConfidence: 80,
			SpeechConfidence: 85,
			BodyConfidence:   81,
			VideoDuration:    30,
		},
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if first.ID == "" || first.UserID != "u-1" {
		t.Fatalf("unexpected record: %#v", first)
	}

	if _, err := store.Record(ctx, ident, history.Entry{Topic: "Technical Interview", Score: 64, Duration: 45}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	sessions, err := store.Sessions(ctx, "u-1")
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	var hr *history.Record
	for i := range sessions {
		if sessions[i].Topic == "HR Interview" {
			hr = &sessions[i]
		}
	}
	if hr == nil {
		t.Fatal("expected HR session in listing")
	}
	if hr.Metrics == nil || hr.Metrics.SpeechConfidence != 85 {
		t.Fatalf("expected metrics restored, got %#v", hr.Metrics)
	}
}

func TestRecordRequiresIdentity(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Record(context.Background(), nil, history.Entry{Topic: "HR Interview", Score: 50, Duration: 10})
	if !errors.Is(err, identity.ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
}

func TestStatsAggregation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ident := testIdentity()

	for _, entry := range []history.Entry{
		{Topic: "HR Interview", Score: 80, Duration: 30},
		{Topic: "HR Interview", Score: 60, Duration: 20},
		{Topic: "Behavioral Interview", Score: 90, Duration: 50},
	} {
		if _, err := store.Record(ctx, ident, entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	stats, err := store.Stats(ctx, "u-1")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalSessions != 3 {
		t.Fatalf("expected 3 sessions, got %d", stats.TotalSessions)
	}
	if stats.AvgScore != 77 {
		t.Fatalf("expected avg 77, got %d", stats.AvgScore)
	}
	if stats.HighestScore != 90 {
		t.Fatalf("expected highest 90, got %d", stats.HighestScore)
	}
	if stats.TotalDuration != 100 {
		t.Fatalf("expected total duration 100, got %d", stats.TotalDuration)
	}
}

func TestStatsEmptyUserIsZero(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats != (history.Stats{}) {
		t.Fatalf("expected zero stats, got %#v", stats)
	}
}
