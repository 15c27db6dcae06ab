package store

import (
	"path/filepath"
	"sync"

	"brightrec/internal/domain"
)

const stateFilename = "state.json"

// StateFileStore persists application state: profile, connections, groups
// and backup settings.
type StateFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewStateFileStore returns a StateFileStore rooted at dir.
func NewStateFileStore(dir string) *StateFileStore {
	return &StateFileStore{dir: dir}
}

// LoadState reads the stored state. A missing file yields the zero state.
func (s *StateFileStore) LoadState() (domain.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st domain.AppState
	if err := readJSON(filepath.Join(s.dir, stateFilename), &st); err != nil {
		return domain.AppState{}, err
	}
	return st, nil
}

// SaveState replaces the stored state.
func (s *StateFileStore) SaveState(st domain.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(filepath.Join(s.dir, stateFilename), st, 0o600)
}

// Compile-time assertion that StateFileStore implements domain.StateStore.
var _ domain.StateStore = (*StateFileStore)(nil)
