package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rehearse/internal/config"
	"rehearse/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyScored(context.Background(), "HR Interview", 82, 30*time.Second); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsMessages(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "recording started",
			notify: func(svc notifications.Service) error {
				return svc.NotifyRecordingStarted(context.Background(), "HR Interview", "Tell me about yourself.")
			},
			expectTitle:   "Rehearse - Recording",
			expectMessage: "🎥 Recording started: HR Interview\nQuestion: Tell me about yourself.",
			expectTags:    "rehearse,recording,started",
		},
		{
			name: "scored",
			notify: func(svc notifications.Service) error {
				return svc.NotifyScored(context.Background(), "Technical Interview", 74, 95*time.Second)
			},
			expectTitle:    "Rehearse - Scored",
			expectMessage:  "✅ Technical Interview scored 74% (answer length 1m35s)",
			expectTags:     "rehearse,analysis,scored",
			expectPriority: "high",
		},
		{
			name: "error",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("scoring service unreachable"), "analysis")
			},
			expectTitle:    "Rehearse - Error",
			expectMessage:  "❌ Error with analysis: scoring service unreachable",
			expectTags:     "rehearse,error,alert",
			expectPriority: "high",
		},
		{
			name: "test notification",
			notify: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "Rehearse - Test",
			expectMessage:  "🧪 Notification system test",
			expectTags:     "rehearse,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5
			cfg.Notifications.Recording = true
			cfg.Notifications.Scored = true
			cfg.Notifications.Errors = true

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceHonorsToggles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for disabled event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Recording = false
	cfg.Notifications.Scored = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	ctx := context.Background()
	if err := svc.NotifyRecordingStarted(ctx, "HR Interview", "q"); err != nil {
		t.Fatalf("expected nil for disabled recording event, got %v", err)
	}
	if err := svc.NotifyScored(ctx, "HR Interview", 50, time.Minute); err != nil {
		t.Fatalf("expected nil for disabled scored event, got %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "analysis"); err != nil {
		t.Fatalf("expected nil for disabled error event, got %v", err)
	}
}
