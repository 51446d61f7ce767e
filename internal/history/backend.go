package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rehearse/internal/config"
	"rehearse/internal/identity"
)

// BackendRecorder persists sessions through the auth backend's REST API.
type BackendRecorder struct {
	baseURL string
	client  *http.Client
}

// NewBackendRecorder builds the REST recorder from configuration.
func NewBackendRecorder(cfg *config.Config) *BackendRecorder {
	timeout := time.Duration(cfg.History.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BackendRecorder{
		baseURL: strings.TrimRight(cfg.History.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type sessionEnvelope struct {
	Success bool    `json:"success"`
	Session *Record `json:"session"`
}

type statsEnvelope struct {
	Success bool  `json:"success"`
	Stats   Stats `json:"stats"`
}

type sessionsEnvelope struct {
	Success  bool     `json:"success"`
	Sessions []Record `json:"sessions"`
}

// Record posts the completed session to POST /auth/session.
func (b *BackendRecorder) Record(ctx context.Context, ident *identity.Identity, entry Entry) (*Record, error) {
	if !ident.Valid() {
		return nil, identity.ErrNoIdentity
	}

	body := map[string]any{
		"user_id":  ident.ID,
		"topic":    entry.Topic,
		"score":    entry.Score,
		"duration": entry.Duration,
	}
	if entry.Question != "" {
		body["question"] = entry.Question
	}
	if entry.Metrics != nil {
		body["detailed_metrics"] = entry.Metrics
	}

	var envelope sessionEnvelope
	if err := b.post(ctx, "/auth/session", body, &envelope); err != nil {
		return nil, &PersistenceError{Op: "record", Err: err}
	}
	if !envelope.Success || envelope.Session == nil {
		return nil, &PersistenceError{Op: "record", Err: fmt.Errorf("backend reported failure")}
	}
	return envelope.Session, nil
}

// Stats fetches GET /auth/user/{id}/stats.
func (b *BackendRecorder) Stats(ctx context.Context, userID string) (Stats, error) {
	var envelope statsEnvelope
	if err := b.get(ctx, "/auth/user/"+url.PathEscape(userID)+"/stats", &envelope); err != nil {
		return Stats{}, &PersistenceError{Op: "stats", Err: err}
	}
	if !envelope.Success {
		return Stats{}, &PersistenceError{Op: "stats", Err: fmt.Errorf("backend reported failure")}
	}
	return envelope.Stats, nil
}

// Sessions fetches GET /auth/user/{id}/sessions.
func (b *BackendRecorder) Sessions(ctx context.Context, userID string) ([]Record, error) {
	var envelope sessionsEnvelope
	if err := b.get(ctx, "/auth/user/"+url.PathEscape(userID)+"/sessions", &envelope); err != nil {
		return nil, &PersistenceError{Op: "sessions", Err: err}
	}
	if !envelope.Success {
		return nil, &PersistenceError{Op: "sessions", Err: fmt.Errorf("backend reported failure")}
	}
	return envelope.Sessions, nil
}

func (b *BackendRecorder) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return b.do(req, out)
}

func (b *BackendRecorder) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return b.do(req, out)
}

func (b *BackendRecorder) do(req *http.Request, out any) error {
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("reach backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ Recorder = (*BackendRecorder)(nil)
