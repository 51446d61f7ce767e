package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rehearse/internal/config"
)

// Client authenticates against the backend's /auth endpoints.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds an auth client from configuration.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.History.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.History.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type userEnvelope struct {
	Success bool      `json:"success"`
	User    *Identity `json:"user"`
	Detail  string    `json:"detail"`
}

// Signup registers a new account and returns the created identity.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*Identity, error) {
	return c.postUser(ctx, "/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Login authenticates an existing account.
func (c *Client) Login(ctx context.Context, email, password string) (*Identity, error) {
	return c.postUser(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) postUser(ctx context.Context, path string, body map[string]string) (*Identity, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reach auth backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope userEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(envelope.Detail)
		if detail == "" {
			detail = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("auth backend rejected request: %s", detail)
	}
	if !envelope.Success || envelope.User == nil {
		return nil, fmt.Errorf("auth backend returned no user")
	}
	return envelope.User, nil
}
