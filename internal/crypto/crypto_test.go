package crypto_test

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightrec/internal/crypto"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
		password  string
	}{
		{name: "json bundle", plaintext: `{"userData":{"id":"id1"},"connections":[]}`, password: "pw123"},
		{name: "block aligned", plaintext: strings.Repeat("a", 32), password: "secret"},
		{name: "empty plaintext", plaintext: "", password: "secret"},
		{name: "unicode", plaintext: "héllo wörld ✓", password: "pässwörd"},
		{name: "data url photo", plaintext: "data:image/jpeg;base64,/9j/4AAQSkZJRg==", password: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := crypto.Encrypt([]byte(tt.plaintext), tt.password)
			require.NoError(t, err)

			raw, err := base64.StdEncoding.DecodeString(ct)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(raw), "Salted__"))

			pt, err := crypto.Decrypt(ct, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, string(pt))
		})
	}
}

func TestEncrypt_FreshSaltEachTime(t *testing.T) {
	a, err := crypto.Encrypt([]byte("same"), "pw")
	require.NoError(t, err)
	b, err := crypto.Encrypt([]byte("same"), "pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecrypt_WrongPasswordNeverYieldsPlaintext(t *testing.T) {
	plaintext := `{"userData":{"id":"id1","name":"Alice"},"connections":[{"id":"c1"}]}`
	ct, err := crypto.Encrypt([]byte(plaintext), "right")
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		pt, err := crypto.Decrypt(ct, "wrong"+string(rune('a'+i%26))+strings.Repeat("!", i))
		if err == nil {
			assert.NotEqual(t, plaintext, string(pt))
		}
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "not base64", in: "***"},
		{name: "missing prefix", in: base64.StdEncoding.EncodeToString(make([]byte, 48))},
		{name: "too short", in: base64.StdEncoding.EncodeToString([]byte("Salted__1234"))},
		{name: "partial block", in: base64.StdEncoding.EncodeToString(append([]byte("Salted__12345678"), make([]byte, 17)...))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := crypto.Decrypt(tt.in, "pw")
			assert.ErrorIs(t, err, crypto.ErrMalformedCiphertext)
		})
	}
}

func TestDerivePasswordKeyHash(t *testing.T) {
	h1 := crypto.DerivePasswordKeyHash("id1", "pw123")
	h2 := crypto.DerivePasswordKeyHash("id1", "pw123")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, crypto.DerivePasswordKeyHash("id1", "pw124"))

	sum := sha256.Sum256([]byte("id1pw123"))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), h1)
	assert.NotContains(t, h1, "=")
	assert.NotContains(t, h1, "/")
	assert.NotContains(t, h1, "+")
}

func TestSigningKeypair_SignVerify(t *testing.T) {
	pub, priv, err := crypto.GenerateSigningKeypair()
	require.NoError(t, err)

	msg := crypto.RecoveryMessage("id1", crypto.B64(pub[:]), 1700000000000)
	assert.Equal(t, "Set Signing Keyid1"+crypto.B64(pub[:])+"1700000000000", string(msg))

	sig := crypto.SignEd25519(priv, msg)
	assert.True(t, crypto.VerifyEd25519(pub, msg, sig))
	assert.False(t, crypto.VerifyEd25519(pub, []byte("tampered"), sig))

	gotPub, err := crypto.PublicKeyFromB64(crypto.B64(pub[:]))
	require.NoError(t, err)
	assert.Equal(t, pub, gotPub)

	gotPriv, err := crypto.PrivateKeyFromB64(crypto.B64(priv[:]))
	require.NoError(t, err)
	assert.Equal(t, priv, gotPriv)

	_, err = crypto.PublicKeyFromB64(crypto.B64([]byte{1, 2, 3}))
	assert.Error(t, err)
}

// Produced by `openssl enc -aes-256-cbc -md md5 -a`, the same envelope
// CryptoJS.AES.encrypt writes on the mobile client.
func TestDecrypt_OpenSSLVector(t *testing.T) {
	const ct = "U2FsdGVkX1/3q1ceXStkQ7K9GU3j/GGW+aT83PjJfcM="

	pt, err := crypto.Decrypt(ct, "pw123")
	require.NoError(t, err)
	assert.Equal(t, "hello brightid", string(pt))

	if pt, err := crypto.Decrypt(ct, "pw124"); err == nil {
		assert.NotEqual(t, "hello brightid", string(pt))
	}
}

func TestTrustedMessage(t *testing.T) {
	msg := crypto.TrustedMessage("u1", []string{"a", "b"}, 42)
	assert.Equal(t, "Set Trusted Connectionsu1a,b42", string(msg))
	assert.Equal(t, "Set Trusted Connectionsu142", string(crypto.TrustedMessage("u1", nil, 42)))
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	crypto.Wipe(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
	crypto.Wipe(nil)
}
