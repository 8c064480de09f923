package persistence

import (
	"encoding/json"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/zap"

	"github.com/melhem/content-hub/internal/domain"
	"github.com/melhem/content-hub/internal/store"
)

// Snapshot keys. Each collection is serialized independently; writes across
// keys are not atomic, a partial snapshot after a crash is acceptable and is
// repaired by the per-key seed fallback on the next load.
const (
	keyCases         = "cases"
	keyNotifications = "notifications"
	keyUsers         = "user"
)

// SnapshotStore persists the full case, notification and user collections as
// JSON blobs in an embedded key-value store.
type SnapshotStore struct {
	db     *leveldb.DB
	logger *zap.Logger
}

// OpenSnapshotStore opens (creating if needed) the snapshot database at path.
func OpenSnapshotStore(path string, logger *zap.Logger) (*SnapshotStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &SnapshotStore{db: db, logger: logger}, nil
}

// Close releases the underlying database.
func (s *SnapshotStore) Close() {
	if s != nil && s.db != nil {
		_ = s.db.Close()
	}
}

// Load restores the store from the persisted snapshot. A missing or
// malformed key falls back to the built-in seed data for that collection.
func (s *SnapshotStore) Load(target *store.Store) error {
	now := time.Now()

	var cases []domain.ClinicalCase
	if !s.readKey(keyCases, &cases) {
		cases = store.SeedCases(now)
	}

	var notifications []domain.Notification
	if !s.readKey(keyNotifications, &notifications) {
		notifications = []domain.Notification{}
	}

	var users []domain.User
	if !s.readKey(keyUsers, &users) {
		users = store.SeedUsers()
	}

	target.Restore(cases, notifications, users)
	s.logger.Info("snapshot loaded",
		zap.Int("cases", len(cases)),
		zap.Int("notifications", len(notifications)),
		zap.Int("users", len(users)))
	return nil
}

// Save serializes the store's collections, one key at a time.
func (s *SnapshotStore) Save(source *store.Store) error {
	if err := s.writeKey(keyCases, source.Cases()); err != nil {
		return err
	}
	if err := s.writeKey(keyNotifications, source.Notifications()); err != nil {
		return err
	}
	return s.writeKey(keyUsers, source.Users())
}

func (s *SnapshotStore) readKey(key string, out any) bool {
	raw, err := s.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return false
	}
	if err != nil {
		s.logger.Warn("snapshot read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("snapshot entry malformed, using seed data", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *SnapshotStore) writeKey(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.Put([]byte(key), raw, nil)
}
