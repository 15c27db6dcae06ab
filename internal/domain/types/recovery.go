package types

// Cosignature is a trusted connection's attestation for a recovery request.
type Cosignature struct {
	SignerID   string `json:"signer" validate:"required"`
	IdentityID string `json:"id" validate:"required"`
	Signature  string `json:"sig" validate:"required"`
	Name       string `json:"name,omitempty"`
	Photo      string `json:"photo,omitempty"`
}

// RecoverySession tracks one in-progress recovery attempt.
//
// CreatedAt is set once when the disposable keypair is generated and never
// updated. Signatures holds at most two entries.
type RecoverySession struct {
	SigningPublicKey string        `json:"publicKey"`
	SigningSecretKey string        `json:"secretKey"`
	IdentityID       string        `json:"id"`
	Name             string        `json:"name"`
	Photo            string        `json:"photo"`
	CreatedAt        int64         `json:"timestamp"`
	Signatures       []Cosignature `json:"sigs"`
}

// Started reports whether a keypair and timestamp have been generated.
func (s RecoverySession) Started() bool { return s.CreatedAt != 0 }

// Ready reports whether two signatures for one identity have been collected.
func (s RecoverySession) Ready() bool {
	return len(s.Signatures) == 2 && s.Signatures[0].IdentityID == s.Signatures[1].IdentityID
}

// Clone returns a copy that shares no slice storage with s.
func (s RecoverySession) Clone() RecoverySession {
	out := s
	if s.Signatures != nil {
		out.Signatures = append([]Cosignature(nil), s.Signatures...)
	}
	return out
}

// Advertisement is what a recovering device shows to trusted connections
// (as a QR code) so they can sign the recovery request.
type Advertisement struct {
	SigningKey string `json:"signingKey" validate:"required"`
	Timestamp  int64  `json:"timestamp" validate:"required"`
}
