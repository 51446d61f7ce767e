package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Cache persists the single current identity between runs, read on startup
// and cleared on logout. This is the local counterpart of the browser
// current-user record the backend variant relies on.
type Cache struct {
	path string
	mu   sync.Mutex
}

// NewCache creates a cache backed by the given file path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Load returns the cached identity, or nil when none is stored.
func (c *Cache) Load() (*Identity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read identity cache: %w", err)
	}

	var ident Identity
	if err := json.Unmarshal(raw, &ident); err != nil {
		return nil, fmt.Errorf("decode identity cache: %w", err)
	}
	if !ident.Valid() {
		return nil, nil
	}
	return &ident, nil
}

// Store replaces the cached identity.
func (c *Cache) Store(ident *Identity) error {
	if !ident.Valid() {
		return ErrNoIdentity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := json.MarshalIndent(ident, "", "  ")
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create identity cache dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write identity cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace identity cache: %w", err)
	}
	return nil
}

// Clear removes the cached identity. Missing files are not an error.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear identity cache: %w", err)
	}
	return nil
}
