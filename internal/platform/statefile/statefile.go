package statefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection names in the state document.
const (
	KeyGoals    = "goals"
	KeyTasks    = "tasks"
	KeySettings = "settings"
)

// Store owns the single JSON state document. Every mutation is a
// read-modify-write of one collection; the mutex covers the whole
// sequence so concurrent callers cannot clobber each other's write-back.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Read returns the raw JSON value of one collection, or nil when the
// document or the collection does not exist yet.
func (s *Store) Read(key string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc[key], nil
}

// Update applies fn to the raw JSON value of one collection and writes the
// document back atomically. fn receives nil when the collection is absent.
func (s *Store) Update(key string, fn func(json.RawMessage) (json.RawMessage, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	next, err := fn(doc[key])
	if err != nil {
		return err
	}
	doc[key] = next
	return s.save(doc)
}

func (s *Store) load() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read state document: %w", err)
	}
	doc := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode state document: %w", err)
	}
	return doc, nil
}

func (s *Store) save(doc map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state document: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write state document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state document: %w", err)
	}
	return nil
}
