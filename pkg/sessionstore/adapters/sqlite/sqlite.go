package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/insurevn/tetadvisor/pkg/errors"
	"github.com/insurevn/tetadvisor/pkg/log"
	"github.com/insurevn/tetadvisor/pkg/memory"
	"github.com/insurevn/tetadvisor/pkg/session"
	"github.com/insurevn/tetadvisor/pkg/sessionstore"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_snapshots (
	session_id TEXT PRIMARY KEY,
	items      TEXT NOT NULL,
	saved_at   TIMESTAMP NOT NULL
);
`

// SQLiteStore implements sessionstore.Store on a SQLite database. The item
// list is stored as a JSON column; one row per session.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ sessionstore.Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path and ensures the
// snapshot table exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database %q", path)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating session_snapshots table")
	}

	log.Debug("initialized sqlite session store", "db_path", path)
	return &SQLiteStore{db: db}, nil
}

// SaveSnapshot implements sessionstore.Store.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, sessionID session.ID, items []memory.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "marshaling items for session %s", sessionID)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_snapshots (session_id, items, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			items = excluded.items,
			saved_at = excluded.saved_at
	`, string(sessionID), string(data), time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "storing snapshot for session %s", sessionID)
	}

	log.DebugContext(ctx, "saved session snapshot", "session_id", sessionID, "items", len(items))
	return nil
}

// LoadSnapshot implements sessionstore.Store.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context, sessionID session.ID) ([]memory.Item, error) {
	var data string
	err := s.db.GetContext(ctx, &data,
		`SELECT items FROM session_snapshots WHERE session_id = ?`, string(sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "reading snapshot for session %s", sessionID)
	}

	var items []memory.Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, errors.Wrap(err, "unmarshaling snapshot for session %s", sessionID)
	}

	log.DebugContext(ctx, "loaded session snapshot", "session_id", sessionID, "items", len(items))
	return items, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
