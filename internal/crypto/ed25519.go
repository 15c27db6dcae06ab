package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"strconv"
	"strings"

	"brightrec/internal/domain"
)

// GenerateSigningKeypair returns a fresh Ed25519 key pair for signing-key rotation.
func GenerateSigningKeypair() (pub domain.Ed25519Public, priv domain.Ed25519Private, err error) {
	pk, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return pub, priv, err
	}
	copy(pub[:], pk)
	copy(priv[:], sk)
	Wipe(sk)
	return pub, priv, nil
}

// SignEd25519 signs msg with priv and returns the signature.
func SignEd25519(priv domain.Ed25519Private, msg []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(priv[:]), msg)
}

// VerifyEd25519 verifies sig over msg with pub.
func VerifyEd25519(pub domain.Ed25519Public, msg, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}

// RecoveryMessage returns the bytes a trusted connection signs to vouch for
// signingKey becoming the new signing key of identityID.
func RecoveryMessage(identityID, signingKey string, timestamp int64) []byte {
	return []byte("Set Signing Key" + identityID + signingKey + strconv.FormatInt(timestamp, 10))
}

// TrustedMessage returns the bytes identityID signs when publishing its
// trusted-connection list.
func TrustedMessage(identityID string, trusted []string, timestamp int64) []byte {
	return []byte("Set Trusted Connections" + identityID + strings.Join(trusted, ",") + strconv.FormatInt(timestamp, 10))
}
