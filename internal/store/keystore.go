package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"brightrec/internal/domain"
)

const keysDir = "keys"

// ErrNoKey is returned when no secret key is stored for an identity.
var ErrNoKey = errors.New("no secret key stored for identity")

// KeyFileStore keeps identity secret keys on disk, each sealed under the
// device keystore passphrase.
type KeyFileStore struct {
	dir        string
	passphrase string
	mu         sync.Mutex
}

// NewKeyFileStore returns a KeyFileStore rooted at dir/keys.
func NewKeyFileStore(dir, passphrase string) *KeyFileStore {
	return &KeyFileStore{dir: filepath.Join(dir, keysDir), passphrase: passphrase}
}

// SaveSecretKey seals and stores the base64 secret key for identityID,
// replacing any previous key.
func (s *KeyFileStore) SaveSecretKey(identityID string, secretKeyB64 string) error {
	if identityID == "" {
		return errors.New("save secret key: empty identity id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	N, r, p := scryptParamsDefault()
	blob, err := seal(s.passphrase, []byte(secretKeyB64), []byte(identityID), N, r, p)
	if err != nil {
		return fmt.Errorf("seal secret key: %w", err)
	}
	return writeFile(s.path(identityID), blob, 0o600)
}

// LoadSecretKey returns the base64 secret key stored for identityID.
func (s *KeyFileStore) LoadSecretKey(identityID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := readFile(s.path(identityID))
	if err != nil {
		return "", err
	}
	if blob == nil {
		return "", ErrNoKey
	}
	pt, err := open(s.passphrase, blob, []byte(identityID))
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// path maps an identity id to a file name that is safe whatever the id contains.
func (s *KeyFileStore) path(identityID string) string {
	sum := sha256.Sum256([]byte(identityID))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:16])+".key")
}

// Compile-time assertion that KeyFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyFileStore)(nil)
