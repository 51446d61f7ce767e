package identity_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"rehearse/internal/config"
	"rehearse/internal/identity"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_user.json")
	cache := identity.NewCache(path)

	loaded, err := cache.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected no identity before store")
	}

	ident := &identity.Identity{ID: "u-1", Name: "Dana", Email: "dana@example.com"}
	if err := cache.Store(ident); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	loaded, err = cache.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil || loaded.ID != "u-1" || loaded.Email != "dana@example.com" {
		t.Fatalf("unexpected identity: %#v", loaded)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected cache file removed")
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear must tolerate missing file: %v", err)
	}
}

func TestCacheRejectsInvalidIdentity(t *testing.T) {
	cache := identity.NewCache(filepath.Join(t.TempDir(), "current_user.json"))
	if err := cache.Store(nil); err == nil {
		t.Fatal("expected error storing nil identity")
	}
	if err := cache.Store(&identity.Identity{Name: "no id"}); err == nil {
		t.Fatal("expected error storing identity without id")
	}
}

func newAuthClient(t *testing.T, url string) *identity.Client {
	t.Helper()
	cfg := config.Default()
	cfg.History.BaseURL = url
	return identity.NewClient(&cfg)
}

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"success": true, "user": {"id": "u-9", "name": "Sam", "email": "sam@example.com"}}`)
	}))
	defer server.Close()

	ident, err := newAuthClient(t, server.URL).Login(context.Background(), "sam@example.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if ident.ID != "u-9" || ident.Name != "Sam" {
		t.Fatalf("unexpected identity: %#v", ident)
	}
}

func TestLoginRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail": "invalid credentials"}`)
	}))
	defer server.Close()

	_, err := newAuthClient(t, server.URL).Login(context.Background(), "x@example.com", "bad")
	if err == nil {
		t.Fatal("expected login error")
	}
}

func TestSignupReturnsUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/signup" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"success": true, "user": {"id": "u-new", "name": "Ada", "email": "ada@example.com"}}`)
	}))
	defer server.Close()

	ident, err := newAuthClient(t, server.URL).Signup(context.Background(), "Ada", "ada@example.com", "pw")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if ident.ID != "u-new" {
		t.Fatalf("unexpected identity: %#v", ident)
	}
}
