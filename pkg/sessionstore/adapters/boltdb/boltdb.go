package boltdb

import (
	"context"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/insurevn/tetadvisor/pkg/errors"
	"github.com/insurevn/tetadvisor/pkg/log"
	"github.com/insurevn/tetadvisor/pkg/memory"
	"github.com/insurevn/tetadvisor/pkg/session"
	"github.com/insurevn/tetadvisor/pkg/sessionstore"
)

var bucketName = []byte("sessions")

// BoltStore implements sessionstore.Store on a BoltDB file. Each session's
// snapshot is one JSON value keyed by session ID in a single bucket.
type BoltStore struct {
	db *bolt.DB
}

var _ sessionstore.Store = (*BoltStore)(nil)

// NewBoltStore opens (or creates) the database file at path and ensures the
// sessions bucket exists.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt database %q", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating sessions bucket")
	}

	log.Debug("initialized boltdb session store", "db_path", db.Path())
	return &BoltStore{db: db}, nil
}

// SaveSnapshot implements sessionstore.Store.
func (b *BoltStore) SaveSnapshot(ctx context.Context, sessionID session.ID, items []memory.Item) error {
	snapshot := sessionstore.Snapshot{
		SessionID: sessionID,
		Items:     items,
		SavedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "marshaling snapshot for session %s", sessionID)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(sessionID), data)
	})
	if err != nil {
		return errors.Wrap(err, "storing snapshot for session %s", sessionID)
	}

	log.DebugContext(ctx, "saved session snapshot", "session_id", sessionID, "items", len(items))
	return nil
}

// LoadSnapshot implements sessionstore.Store.
func (b *BoltStore) LoadSnapshot(ctx context.Context, sessionID session.ID) ([]memory.Item, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(sessionID))
		if raw != nil {
			data = make([]byte, len(raw))
			copy(data, raw)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot for session %s", sessionID)
	}

	if data == nil {
		return nil, errors.ErrSessionNotFound
	}

	var snapshot sessionstore.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(err, "unmarshaling snapshot for session %s", sessionID)
	}

	log.DebugContext(ctx, "loaded session snapshot", "session_id", sessionID, "items", len(snapshot.Items))
	return snapshot.Items, nil
}

// Close closes the underlying database file.
func (b *BoltStore) Close() error {
	return b.db.Close()
}
