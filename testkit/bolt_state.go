package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.etcd.io/bbolt"

	"attack_game/contract"
)

// Store is a contract.State that can also list its keys, so the ledger can serve
// generic state-variable queries.
type Store interface {
	contract.State
	Keys() []string
}

var (
	_ Store = (*contract.MockState)(nil)
	_ Store = (*BoltState)(nil)
)

// BoltDB wraps a bbolt database holding one bucket per deployed contract.
type BoltDB struct {
	db *bbolt.DB
}

// OpenBoltDB opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltDB(dbPath string) (*BoltDB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("testkit: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("testkit: open bolt db: %w", err)
	}
	return &BoltDB{db: db}, nil
}

// Close closes the underlying database.
func (b *BoltDB) Close() error { return b.db.Close() }

// State returns the state bucket of one contract, creating it on first use.
func (b *BoltDB) State(contractID string) (*BoltState, error) {
	bucket := []byte("state:" + contractID)
	err := b.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
			return fmt.Errorf("boltstate: create bucket %q: %w", bucket, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BoltState{db: b.db, bucket: bucket}, nil
}

// BoltState persists contract state in a bbolt bucket. contract.State has no error
// returns, so storage failures are kept and surfaced through Err after the trigger.
type BoltState struct {
	db     *bbolt.DB
	bucket []byte
	err    error
}

func (s *BoltState) Set(key, value string) {
	s.keep(s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), []byte(value))
	}))
}

func (s *BoltState) Get(key string) *string {
	var out *string
	s.keep(s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(s.bucket).Get([]byte(key)); v != nil {
			val := string(v)
			out = &val
		}
		return nil
	}))
	return out
}

func (s *BoltState) Delete(key string) {
	s.keep(s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	}))
}

// Keys returns all stored keys in sorted order.
func (s *BoltState) Keys() []string {
	var keys []string
	s.keep(s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	}))
	sort.Strings(keys)
	return keys
}

// Err returns the first storage error seen and clears it.
func (s *BoltState) Err() error {
	err := s.err
	s.err = nil
	return err
}

func (s *BoltState) keep(err error) {
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("boltstate: %w", err)
	}
}
