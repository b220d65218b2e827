package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/streamscout/internal/domain"
)

// Bucket names
var (
	bucketContent   = []byte("content")
	bucketProviders = []byte("providers")
)

// Store implements domain.CacheStore using BoltDB.
//
// Content records are keyed "<kind>:<id>". The provider set for one
// (kind, id, region) scope is stored as a single value under
// "<kind>:<id>:<region>", so replacing the set is one Put inside one
// write transaction and a reader can never observe a partial set.
// Keys for other regions are never touched by an upsert.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewStore opens (or creates) the cache database under dir and creates
// the schema idempotently. An empty dir gives a memory-only store with
// no persistence.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "streamscout.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketContent, bucketProviders} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func contentKey(kind domain.ContentKind, id int) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

func providersKey(kind domain.ContentKind, id int, region string) string {
	return fmt.Sprintf("%s:%d:%s", kind, id, region)
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

// === Content records ===

// GetContent looks up one record by (kind, id)
func (s *Store) GetContent(kind domain.ContentKind, id int) (*domain.ContentRecord, bool) {
	var rec domain.ContentRecord
	if !s.get(bucketContent, contentKey(kind, id), &rec) {
		return nil, false
	}
	return &rec, true
}

// === Provider availability ===

// GetProviders returns the availability rows for (kind, id, region).
// An unknown scope yields an empty slice.
func (s *Store) GetProviders(kind domain.ContentKind, id int, region string) []domain.ProviderRecord {
	var recs []domain.ProviderRecord
	s.get(bucketProviders, providersKey(kind, id, region), &recs)
	return recs
}

// UpsertContent writes the content record and replaces the provider set
// for (kind, id, region) in a single write transaction. The old set is
// gone and the new one visible only when the transaction commits.
func (s *Store) UpsertContent(rec *domain.ContentRecord, region string, providers []domain.ProviderRecord) error {
	recData, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if providers == nil {
		providers = []domain.ProviderRecord{}
	}
	provData, err := json.Marshal(providers)
	if err != nil {
		return err
	}

	cKey := contentKey(rec.Kind, rec.ID)
	pKey := providersKey(rec.Kind, rec.ID, region)

	if s.db != nil {
		err = s.db.Update(func(tx *bolt.Tx) error {
			if err := tx.Bucket(bucketContent).Put([]byte(cKey), recData); err != nil {
				return err
			}
			return tx.Bucket(bucketProviders).Put([]byte(pKey), provData)
		})
		if err != nil {
			return err
		}
	}

	// Update memory cache only after a successful commit so an aborted
	// write never leaks into reads.
	s.mu.Lock()
	s.cache[string(bucketContent)+":"+cKey] = recData
	s.cache[string(bucketProviders)+":"+pKey] = provData
	s.mu.Unlock()

	return nil
}
