package backupsrv

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by backends when no value is stored.
var ErrNotFound = errors.New("backup not found")

// Backend stores ciphertext under (hashedID, key).
type Backend interface {
	Put(ctx context.Context, hashedID, key, data string) error
	Get(ctx context.Context, hashedID, key string) (string, error)
}

type entryKey struct {
	hashedID string
	key      string
}

// MemoryBackend keeps backups in process memory.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[entryKey]string
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[entryKey]string)}
}

// Put stores data, replacing any previous value.
func (m *MemoryBackend) Put(_ context.Context, hashedID, key, data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entryKey{hashedID, key}] = data
	return nil
}

// Get returns the stored value or ErrNotFound.
func (m *MemoryBackend) Get(_ context.Context, hashedID, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[entryKey{hashedID, key}]
	if !ok {
		return "", ErrNotFound
	}
	return data, nil
}

// Len returns the number of stored values.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

var _ Backend = (*MemoryBackend)(nil)
