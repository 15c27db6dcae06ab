package interfaces

import (
	"context"

	domaintypes "brightrec/internal/domain/types"
)

// BackupStore is the remote key-value recovery store. Values are opaque
// ciphertext keyed by (hashed identity, key).
type BackupStore interface {
	PutRecovery(ctx context.Context, hashedID string, key domaintypes.BackupKey, ciphertext string) error
	GetRecovery(ctx context.Context, hashedID string, key domaintypes.BackupKey) (string, error)
}

// NodeClient talks to the identity network for trust and signing-key operations.
type NodeClient interface {
	SetTrusted(ctx context.Context, req domaintypes.TrustedRequest) error
	SetSigningKey(ctx context.Context, req domaintypes.SigningKeyRequest) error
}

// ProgressSink receives progress notifications.
type ProgressSink interface {
	Emit(event domaintypes.ProgressEvent)
}
