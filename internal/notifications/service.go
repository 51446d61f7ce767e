package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rehearse/internal/config"
)

const userAgent = "Rehearse/0.1.0"

// Service defines the notification surface exposed to the interview flow.
type Service interface {
	NotifyRecordingStarted(ctx context.Context, topic, question string) error
	NotifyScored(ctx context.Context, topic string, score int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint:  topic,
		client:    client,
		recording: cfg.Notifications.Recording,
		scored:    cfg.Notifications.Scored,
		errors:    cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	recording bool
	scored    bool
	errors    bool
}

func (n *ntfyService) NotifyRecordingStarted(ctx context.Context, topic, question string) error {
	if !n.recording {
		return nil
	}
	topic = strings.TrimSpace(topic)
	question = strings.TrimSpace(question)
	message := fmt.Sprintf("🎥 Recording started: %s", topic)
	if question != "" {
		message = fmt.Sprintf("%s\nQuestion: %s", message, question)
	}
	data := payload{
		title:   "Rehearse - Recording",
		message: message,
		tags:    []string{"rehearse", "recording", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScored(ctx context.Context, topic string, score int, duration time.Duration) error {
	if !n.scored {
		return nil
	}
	topic = strings.TrimSpace(topic)
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	data := payload{
		title:    "Rehearse - Scored",
		message:  fmt.Sprintf("✅ %s scored %d%% (answer length %s)", topic, score, duration),
		tags:     []string{"rehearse", "analysis", "scored"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("❌ Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Rehearse - Error",
		message:  builder.String(),
		tags:     []string{"rehearse", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Rehearse - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"rehearse", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRecordingStarted(context.Context, string, string) error   { return nil }
func (noopService) NotifyScored(context.Context, string, int, time.Duration) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error               { return nil }
func (noopService) TestNotification(context.Context) error                         { return nil }
