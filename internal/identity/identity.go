package identity

import (
	"errors"
	"strings"
	"time"
)

// ErrNoIdentity indicates an operation that requires a signed-in user was
// attempted without one.
var ErrNoIdentity = errors.New("no identity available")

// Identity is the authenticated user reference used to tag session records.
// Supplied by the auth backend; treated as read-only by the rest of the
// system.
type Identity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the identity can tag session records.
func (i *Identity) Valid() bool {
	return i != nil && strings.TrimSpace(i.ID) != ""
}
