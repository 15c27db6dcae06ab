package store

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// The current supported version of the sealed key format stored on disk.
const keystoreFormatVersion = 1

// ErrWrongPassphrase is returned when the keystore passphrase is incorrect or
// the sealed blob has been modified.
var ErrWrongPassphrase = errors.New("wrong keystore passphrase or corrupted key file")

// ErrIdentityMismatch is returned when a sealed blob was made for a different identity.
var ErrIdentityMismatch = errors.New("key file belongs to another identity")

// sealed is the on-disk JSON structure holding a ciphertext and its KDF parameters.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	AD     []byte `json:"ad,omitempty"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and seals raw, binding ad (the identity
// id) as associated data so a key file cannot be swapped between identities.
func seal(passphrase string, raw, ad []byte, N, r, p int) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	// Zero nonce: the salt-bound key is single use.
	nonce := make([]byte, aead.NonceSize())
	ct := aead.Seal(nil, nonce, raw, boundAD(salt, ad))

	return json.Marshal(sealed{V: keystoreFormatVersion, Salt: salt, N: N, R: r, P: p, AD: ad, Cipher: ct})
}

// open reverses seal. ad must match what was sealed.
func open(passphrase string, b, ad []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if s.V > keystoreFormatVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", s.V)
	}
	if !bytes.Equal(s.AD, ad) {
		return nil, ErrIdentityMismatch
	}
	key, err := scrypt.Key([]byte(passphrase), s.Salt, s.N, s.R, s.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	pt, err := aead.Open(nil, nonce, s.Cipher, boundAD(s.Salt, ad))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func boundAD(salt, ad []byte) []byte {
	out := make([]byte, 0, len(salt)+len(ad))
	out = append(out, salt...)
	return append(out, ad...)
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
