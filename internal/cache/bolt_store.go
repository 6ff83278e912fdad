package cache

import (
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

const pathIndexBucket = "path_index"

// BoltStore is the primary Store backend, following the teacher's
// index/boltdb.go bucket-per-namespace style: one bucket per result
// namespace, one per its paired config namespace, plus path_index.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if absent) a BoltDB-backed Store at
// dbPath.
func NewBoltStore(dbPath string) (*BoltStore, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache: open boltdb %s: %w", dbPath, err)
	}

	store := &BoltStore{db: db}
	if err := store.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init buckets: %w", err)
	}
	return store, nil
}

func (s *BoltStore) initBuckets() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		buckets := []string{pathIndexBucket}
		for _, ns := range namespaces {
			buckets = append(buckets, string(ns), string(configNamespace(ns)))
		}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(b)); err != nil {
				return fmt.Errorf("cache: create bucket %s: %w", b, err)
			}
		}
		return nil
	})
}

// Get implements Store.
func (s *BoltStore) Get(ns Namespace, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(ns))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s/%s: %w", ns, key, err)
	}
	return data, data != nil, nil
}

// Put implements Store, writing the result and its config hash in a
// single transaction (spec.md §5 atomic write).
func (s *BoltStore) Put(ns Namespace, key string, data []byte, configHash string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		resultBucket, err := tx.CreateBucketIfNotExists([]byte(ns))
		if err != nil {
			return err
		}
		if err := resultBucket.Put([]byte(key), data); err != nil {
			return fmt.Errorf("cache: put %s/%s: %w", ns, key, err)
		}

		cfgBucket, err := tx.CreateBucketIfNotExists([]byte(configNamespace(ns)))
		if err != nil {
			return err
		}
		if err := cfgBucket.Put([]byte(key), []byte(configHash)); err != nil {
			return fmt.Errorf("cache: put config %s/%s: %w", ns, key, err)
		}
		return nil
	})
}

// GetConfig implements Store.
func (s *BoltStore) GetConfig(ns Namespace, key string) (string, bool, error) {
	var cfg []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(configNamespace(ns)))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			cfg = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("cache: get config %s/%s: %w", ns, key, err)
	}
	return string(cfg), cfg != nil, nil
}

// PathHash implements Store.
func (s *BoltStore) PathHash(path string) (string, bool, error) {
	var hash []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(pathIndexBucket))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(path)); v != nil {
			hash = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("cache: path hash %s: %w", path, err)
	}
	return string(hash), hash != nil, nil
}

// SetPathHash implements Store.
func (s *BoltStore) SetPathHash(path, contentHash string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(pathIndexBucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(path), []byte(contentHash))
	})
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
