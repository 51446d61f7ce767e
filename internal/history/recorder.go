package history

import (
	"context"

	"rehearse/internal/identity"
)

// Recorder persists completed practice sessions and serves aggregate history.
// Two implementations exist: the auth-backend REST client and the local
// SQLite store.
type Recorder interface {
	// Record persists one completed session against the identity. Fails with
	// identity.ErrNoIdentity when the identity is absent, or a
	// *PersistenceError when the backend rejects the write.
	Record(ctx context.Context, ident *identity.Identity, entry Entry) (*Record, error)
	// Stats returns aggregate statistics for the user.
	Stats(ctx context.Context, userID string) (Stats, error)
	// Sessions lists the user's practice history, newest first.
	Sessions(ctx context.Context, userID string) ([]Record, error)
}
