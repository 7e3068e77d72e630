package addressbook

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// peersBucket is the single bbolt bucket every persisted peer record
// lives in, keyed by address.
var peersBucket = []byte("peers")

// Store persists an AddressBook's known peers across restarts. This is
// additive to the protocol described in Spawn: the original updater has
// no equivalent, since its address book is rebuilt from scratch (seed
// peers plus gossip) on every process start. A long-running node
// benefits from not re-discovering its peer set from nothing every
// time, so Store is opt-in and used only when the owner configures a
// database path.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens (creating if necessary) a bbolt database at path for
// address book persistence.
func OpenStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("addressbook: open store: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(peersBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("addressbook: init store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the store's contents with records.
func (s *Store) Save(records []PeerRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(peersBucket); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		bucket, err := tx.CreateBucket(peersBucket)
		if err != nil {
			return err
		}
		for _, r := range records {
			data, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("addressbook: marshal peer record: %w", err)
			}
			if err := bucket.Put([]byte(r.Addr), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns every persisted peer record.
func (s *Store) Load() ([]PeerRecord, error) {
	var records []PeerRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(peersBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, v []byte) error {
			var r PeerRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("addressbook: unmarshal peer record: %w", err)
			}
			records = append(records, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
