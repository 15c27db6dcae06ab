package crypto

import (
	"crypto/sha256"
	"encoding/base64"
)

// DerivePasswordKeyHash returns the storage key for identityID's backups
// under password: SHA-256 over identityID+password, URL-safe base64
// without padding.
func DerivePasswordKeyHash(identityID, password string) string {
	sum := sha256.Sum256([]byte(identityID + password))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
