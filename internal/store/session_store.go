package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"brightrec/internal/domain"
)

const sessionFilename = "recovery_session.json"

// SessionFileStore persists the in-progress recovery session to disk.
type SessionFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{dir: dir}
}

// SaveSession writes the session record.
func (s *SessionFileStore) SaveSession(session domain.RecoverySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(filepath.Join(s.dir, sessionFilename), session, 0o600)
}

// LoadSession returns the stored session and whether one was present.
func (s *SessionFileStore) LoadSession() (domain.RecoverySession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session domain.RecoverySession
	b, err := readFile(filepath.Join(s.dir, sessionFilename))
	if err != nil || b == nil {
		return domain.RecoverySession{}, false, err
	}
	if err := unmarshal(b, &session); err != nil {
		return domain.RecoverySession{}, false, err
	}
	return session, true, nil
}

// ClearSession removes the stored session. Clearing an absent session is not an error.
func (s *SessionFileStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, sessionFilename))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
