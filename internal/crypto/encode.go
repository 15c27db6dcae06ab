package crypto

import (
	"encoding/base64"
	"fmt"

	"brightrec/internal/domain"
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// FromB64 decodes standard base64 text.
func FromB64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return b, nil
}

// PublicKeyFromB64 decodes a base64 Ed25519 public key.
func PublicKeyFromB64(s string) (domain.Ed25519Public, error) {
	var out domain.Ed25519Public
	b, err := FromB64(s)
	if err != nil {
		return out, err
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("ed25519 public: want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}

// PrivateKeyFromB64 decodes a base64 Ed25519 private key.
func PrivateKeyFromB64(s string) (domain.Ed25519Private, error) {
	var out domain.Ed25519Private
	b, err := FromB64(s)
	if err != nil {
		return out, err
	}
	defer Wipe(b)
	if len(b) != len(out) {
		return out, fmt.Errorf("ed25519 private: want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}
