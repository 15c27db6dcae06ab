package interfaces

import (
	"context"

	domaintypes "brightrec/internal/domain/types"
)

// RecoveryService drives one recovery attempt from session setup to restore.
type RecoveryService interface {
	BeginSession(ctx context.Context) (domaintypes.RecoverySession, error)
	Advertisement(ctx context.Context) (string, error)
	AcceptSignature(
		ctx context.Context,
		sig *domaintypes.Cosignature,
	) (domaintypes.AcceptResult, error)
	CompleteRecovery(ctx context.Context, password string) (domaintypes.RecoveryResult, error)
	CancelSession(ctx context.Context) error
}

// BackupService keeps the remote encrypted copy of application state current.
type BackupService interface {
	WriteTrustedConnections(ctx context.Context, state domaintypes.AppState) error
	BackupUserBundle(ctx context.Context, state domaintypes.AppState) (string, error)
	BackupAll(ctx context.Context, state domaintypes.AppState) domaintypes.BackupReport
}

// SignerService is the trusted-connection side: it signs another user's
// recovery advertisement.
type SignerService interface {
	Sign(
		ctx context.Context,
		advertisement string,
		recovering domaintypes.Profile,
	) (domaintypes.Cosignature, error)
}
