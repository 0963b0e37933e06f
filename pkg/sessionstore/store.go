package sessionstore

import (
	"context"
	"time"

	"github.com/insurevn/tetadvisor/pkg/memory"
	"github.com/insurevn/tetadvisor/pkg/session"
)

// Snapshot is a persisted copy of a session's short-term memory.
type Snapshot struct {
	SessionID session.ID    `json:"session_id" db:"session_id"`
	Items     []memory.Item `json:"items"`
	SavedAt   time.Time     `json:"saved_at" db:"saved_at"`
}

// Store persists short-term memory snapshots between chat sessions so a
// returning customer resumes where they left off.
type Store interface {
	// SaveSnapshot stores the items for the session, replacing any
	// previous snapshot.
	SaveSnapshot(ctx context.Context, sessionID session.ID, items []memory.Item) error

	// LoadSnapshot returns the items last saved for the session. It
	// returns errors.ErrSessionNotFound when no snapshot exists.
	LoadSnapshot(ctx context.Context, sessionID session.ID) ([]memory.Item, error)

	// Close releases the underlying storage handle.
	Close() error
}
