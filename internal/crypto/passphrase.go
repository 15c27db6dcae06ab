package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" // #nosec G501 -- EVP_BytesToKey of the existing backup format
	"crypto/rand"
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	saltedPrefix = "Salted__"
	saltBytes    = 8
	aesKeyBytes  = 32
)

var (
	// ErrMalformedCiphertext is returned when the envelope cannot be parsed.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	// ErrDecrypt is returned when the ciphertext does not open under the password.
	ErrDecrypt = errors.New("wrong password or corrupted ciphertext")
)

// Encrypt seals plaintext under password and returns base64 text of
// "Salted__" || salt || AES-256-CBC(PKCS#7) ciphertext, the format the mobile
// client writes to the recovery store.
func Encrypt(plaintext []byte, password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key, iv := evpBytesToKey([]byte(password), salt)
	defer Wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, len(saltedPrefix)+saltBytes+len(padded))
	copy(out, saltedPrefix)
	copy(out[len(saltedPrefix):], salt)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(saltedPrefix)+saltBytes:], padded)
	Wipe(padded)
	return B64(out), nil
}

// Decrypt opens text produced by Encrypt. The envelope carries no MAC, so a
// wrong password is only detected through padding or UTF-8 failures.
func Decrypt(ciphertext, password string) ([]byte, error) {
	raw, err := FromB64(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	hdr := len(saltedPrefix) + saltBytes
	if len(raw) < hdr+aes.BlockSize || !bytes.HasPrefix(raw, []byte(saltedPrefix)) {
		return nil, ErrMalformedCiphertext
	}
	body := raw[hdr:]
	if len(body)%aes.BlockSize != 0 {
		return nil, ErrMalformedCiphertext
	}

	key, iv := evpBytesToKey([]byte(password), raw[len(saltedPrefix):hdr])
	defer Wipe(key)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	pt := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, body)

	pt, ok := pkcs7Unpad(pt, aes.BlockSize)
	if !ok || !utf8.Valid(pt) {
		return nil, ErrDecrypt
	}
	return pt, nil
}

// evpBytesToKey is OpenSSL's EVP_BytesToKey with MD5 and one iteration,
// producing a 32-byte key and 16-byte IV.
func evpBytesToKey(password, salt []byte) (key, iv []byte) {
	var (
		derived []byte
		prev    []byte
	)
	for len(derived) < aesKeyBytes+aes.BlockSize {
		h := md5.New() // #nosec G401
		h.Write(prev)
		h.Write(password)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	key = append([]byte(nil), derived[:aesKeyBytes]...)
	iv = append([]byte(nil), derived[aesKeyBytes:aesKeyBytes+aes.BlockSize]...)
	Wipe(derived)
	return key, iv
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	out := make([]byte, len(b)+n)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func pkcs7Unpad(b []byte, size int) ([]byte, bool) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, false
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
