// Package cache persists index artifact bundles in a single bbolt file.
//
// Each bundle lives in its own bucket under a fixed key. PutPair writes two
// bundles in one transaction so the lexical and semantic artifacts are
// committed as a pair.
package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/hyperjump/eiga/internal/errs"
)

const snapshotKey = "snapshot"

// Bucket names for the two artifact bundles.
const (
	BucketLexical  = "lexical"
	BucketSemantic = "semantic"
)

// Store is a handle to the on-disk artifact cache.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the cache file at path, creating parent directories
// as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put gob-encodes v into the named bucket.
func (s *Store) Put(bucket string, v any) error {
	data, err := encode(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		return b.Put([]byte(snapshotKey), data)
	})
}

// PutPair writes two bundles in a single transaction.
func (s *Store) PutPair(bucketA string, a any, bucketB string, b any) error {
	dataA, err := encode(a)
	if err != nil {
		return err
	}
	dataB, err := encode(b)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, entry := range []struct {
			bucket string
			data   []byte
		}{{bucketA, dataA}, {bucketB, dataB}} {
			bkt, err := tx.CreateBucketIfNotExists([]byte(entry.bucket))
			if err != nil {
				return fmt.Errorf("create bucket %s: %w", entry.bucket, err)
			}
			if err := bkt.Put([]byte(snapshotKey), entry.data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get decodes the named bundle into out. A missing or undecodable bundle is
// a CorruptState error.
func (s *Store) Get(bucket string, out any) error {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return errs.CorruptState("cache bundle %q not found", bucket)
		}
		v := b.Get([]byte(snapshotKey))
		if v == nil {
			return errs.CorruptState("cache bundle %q is empty", bucket)
		}
		data = append(data, v...)
		return nil
	})
	if err != nil {
		return err
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(out); err != nil {
		return errs.CorruptState("decode cache bundle %q: %v", bucket, err)
	}
	return nil
}

// Has reports whether the named bundle exists.
func (s *Store) Has(bucket string) bool {
	var found bool
	_ = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		found = b != nil && b.Get([]byte(snapshotKey)) != nil
		return nil
	})
	return found
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode cache bundle: %w", err)
	}
	return buf.Bytes(), nil
}
