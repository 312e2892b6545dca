package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketUI = []byte("ui")
)

// StateStore persists cosmetic UI state (such as the last login name) per
// catalog server, using BoltDB. It never holds catalog data (the catalog
// is refetched from the service on every trigger) and never holds
// credentials or tokens.
type StateStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory map

	// In-memory map, also used as the whole store in memory-only mode
	mem map[string][]byte
}

// New opens the state store under baseDir, in a subdirectory keyed by the
// server URL. An empty baseDir yields a memory-only store (no persistence).
func New(baseDir, serverURL string) (*StateStore, error) {
	if baseDir == "" {
		return &StateStore{mem: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if serverURL != "" {
		dir = filepath.Join(baseDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "shelf.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUI)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &StateStore{db: db, mem: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *StateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *StateStore) get(key string, dest any) bool {
	s.mu.RLock()
	if data, ok := s.mem[key]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUI)
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

	s.mu.Lock()
	s.mem[key] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *StateStore) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.mem[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUI)
		return b.Put([]byte(key), data)
	})
}

// === Login prefill ===

// LastUsername returns the username of the most recent successful login.
func (s *StateStore) LastUsername() (string, bool) {
	var name string
	ok := s.get("last_username", &name)
	return name, ok && name != ""
}

// SaveLastUsername records the username after a successful login so the
// login form can prefill it next time.
func (s *StateStore) SaveLastUsername(name string) error {
	return s.set("last_username", name)
}
