// Package session persists the authenticated identity (bearer token + username)
// between command invocations.
//
// The pair rule: a session is only meaningful when both credentials are present.
// [FileStore.Save] writes them atomically and [FileStore.Clear] removes them in
// one operation, so readers never observe a token without its username. State on
// disk is trusted until the server rejects it; no validation round trip happens
// on load.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nightorbs/flixctl/internal/models"
	"github.com/nightorbs/flixctl/internal/shared"
)

// Store provides access to the persisted session. The API client reads it
// fresh on every call; login and logout flows write it.
type Store interface {
	// Current returns the persisted session. An absent session is a zero
	// [models.Session], not an error.
	Current() (models.Session, error)

	// Save persists token and username as a pair. Partial pairs are rejected.
	Save(s models.Session) error

	// Clear removes all persisted session state in one operation.
	Clear() error

	// Authenticated reports whether a complete session is present.
	Authenticated() bool
}

// FileStore keeps the session in a JSON file (default ~/.flixctl/session.json)
// with owner-only permissions. Writes go through a temp file and rename so a
// crash never leaves half a pair behind.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Current() (models.Session, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", shared.ErrSessionStore, err)
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", shared.ErrSessionStore, err)
	}

	return s, nil
}

func (f *FileStore) Save(s models.Session) error {
	if !s.Valid() {
		return fmt.Errorf("%w: session requires both token and username", shared.ErrInvalidInput)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSessionStore, err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSessionStore, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSessionStore, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", shared.ErrSessionStore, err)
	}

	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", shared.ErrSessionStore, err)
	}
	return nil
}

func (f *FileStore) Authenticated() bool {
	s, err := f.Current()
	return err == nil && s.Valid()
}

// MemStore is an in-memory [Store] for tests and throwaway sessions.
type MemStore struct {
	mu sync.Mutex
	s  models.Session
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Current() (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *MemStore) Save(s models.Session) error {
	if !s.Valid() {
		return fmt.Errorf("%w: session requires both token and username", shared.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = models.Session{}
	return nil
}

func (m *MemStore) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.Valid()
}
