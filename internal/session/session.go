// Package session persists the current user identity across runs. One JSON
// record lives under a well-known path in the config directory, plus an
// optional one-shot redirect marker written right after login and consumed
// on the next startup.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"vecindario/internal/config"
	"vecindario/internal/model"
)

const (
	sessionFile  = "session.json"
	redirectFile = "redirect"
)

// Store keeps the in-memory identity and its persisted copy consistent.
// All mutations go through Set/Clear so there is no window where memory and
// disk diverge after a successful call.
type Store struct {
	mu      sync.Mutex
	dir     string
	current *model.User
	loaded  bool
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

var (
	defaultStore *Store
	defaultOnce  sync.Once
)

// Default returns the process-wide store, lazily initialized from the
// config directory.
func Default() *Store {
	defaultOnce.Do(func() {
		dir, err := config.Dir()
		if err != nil {
			dir = "."
		}
		defaultStore = NewStore(dir)
	})
	return defaultStore
}

func (s *Store) sessionPath() string  { return filepath.Join(s.dir, sessionFile) }
func (s *Store) redirectPath() string { return filepath.Join(s.dir, redirectFile) }

// Load restores the persisted identity. A malformed record (unparseable or
// lacking a positive id) is purged from disk and treated as logged out;
// it is never an error.
func (s *Store) Load() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	data, err := os.ReadFile(s.sessionPath())
	if err != nil {
		s.current = nil
		return nil
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil || !u.Valid() {
		_ = os.Remove(s.sessionPath())
		s.current = nil
		return nil
	}

	cp := u
	s.current = &cp
	return &u
}

// Current returns a copy of the active identity, or nil. The first call
// loads from disk.
func (s *Store) Current() *model.User {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if !loaded {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Set persists u and then updates the in-memory copy. Writes go through a
// temp file plus rename so a crash cannot leave a torn record.
func (s *Store) Set(u model.User) error {
	if !u.Valid() {
		return os.ErrInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.sessionPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.sessionPath()); err != nil {
		return err
	}

	cp := u
	s.current = &cp
	s.loaded = true
	return nil
}

// Clear removes both the in-memory and persisted copies.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.sessionPath())
	s.current = nil
	s.loaded = true
}

// SetRedirect stores the one-shot page marker consumed on next startup.
func (s *Store) SetRedirect(page string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.redirectPath(), []byte(page), 0600)
}

// TakeRedirect returns the pending redirect marker and removes it. Empty
// string when none is stored.
func (s *Store) TakeRedirect() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.redirectPath())
	if err != nil {
		return ""
	}
	_ = os.Remove(s.redirectPath())
	return strings.TrimSpace(string(data))
}
