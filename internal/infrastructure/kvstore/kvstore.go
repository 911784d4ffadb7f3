// Package kvstore provides a tiny file-backed key-value store with JSON
// values. It stands in for a real datastore the way browser local storage
// would: a handful of logical keys, whole-value reads and writes, no
// transactions beyond a single atomic file swap.
package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store reads and writes JSON-encoded values under string keys in one file.
// Every mutation performs its read-modify-write under the store lock, so a
// logical operation never observes another's in-flight write.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open returns a store backed by the file at path. The file is created lazily
// on first write; a missing or malformed file reads as empty.
func Open(path string) *Store {
	return &Store{path: path}
}

// Get decodes the value stored under key into out. The second return reports
// whether the key was present.
func (s *Store) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	raw, ok := entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode key %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode key %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	entries[key] = raw
	return s.save(entries)
}

// Update applies fn to the value under key as one read-modify-write step: the
// store lock is held from the read until the file swap, so concurrent updates
// never overwrite each other. fn receives the current raw JSON (nil when the
// key is absent) and returns the replacement value; an error from fn aborts
// the write.
func (s *Store) Update(key string, fn func(raw json.RawMessage) (any, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	value, err := fn(entries[key])
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode key %q: %w", key, err)
	}
	entries[key] = raw
	return s.save(entries)
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.save(entries)
}

// load reads the backing file, treating missing or corrupt content as empty
// so a damaged store degrades to a fresh one instead of failing every call.
func (s *Store) load() map[string]json.RawMessage {
	entries := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return make(map[string]json.RawMessage)
	}
	return entries
}

// save writes the full entry map through a temp file and rename so readers
// never see a torn file.
func (s *Store) save(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
