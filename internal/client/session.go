package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/SriHarshaMande/Planning-poker/internal/model"
)

// Session is the pair a client persists between runs: which room it was in
// and who it was there.
type Session struct {
	RoomID   model.RoomID `json:"roomId"`
	PlayerID string       `json:"playerId"`
}

type SessionStore interface {
	Load() (Session, bool)
	Save(session Session) error
	Clear() error
}

// FileSessionStore persists the session as a small JSON file.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Load() (Session, bool) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, false
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return Session{}, false
	}
	if session.RoomID == model.EmptyRoomID || session.PlayerID == "" {
		return Session{}, false
	}
	return session, true
}

func (s *FileSessionStore) Save(session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, payload, 0o600)
}

func (s *FileSessionStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemorySessionStore holds the session for the lifetime of the process.
type MemorySessionStore struct {
	mu      sync.Mutex
	session Session
	set     bool
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Load() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.set
}

func (s *MemorySessionStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.set = true
	return nil
}

func (s *MemorySessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	s.set = false
	return nil
}
