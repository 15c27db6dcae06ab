package types

// OperationVersion is the node API version stamped on every operation.
const OperationVersion = 5

// SigningKeyRequest asks the node to make SigningKey the identity's signing
// key, authorised by two trusted connections' signatures.
type SigningKeyRequest struct {
	ID         string `json:"id"`
	SigningKey string `json:"signingKey"`
	Timestamp  int64  `json:"timestamp"`
	ID1        string `json:"id1"`
	ID2        string `json:"id2"`
	Sig1       string `json:"sig1"`
	Sig2       string `json:"sig2"`
}

// TrustedRequest publishes the plaintext allow-list of connections that may
// co-sign a recovery for ID. Sig is made with ID's current signing key.
type TrustedRequest struct {
	ID        string   `json:"id"`
	Trusted   []string `json:"trusted"`
	Timestamp int64    `json:"timestamp"`
	Sig       string   `json:"sig,omitempty"`
}
