package interfaces

import domaintypes "brightrec/internal/domain/types"

// SessionStore persists the single in-progress recovery session.
type SessionStore interface {
	LoadSession() (domaintypes.RecoverySession, bool, error)
	SaveSession(session domaintypes.RecoverySession) error
	ClearSession() error
}

// KeyStore is local secure storage for identity secret keys.
type KeyStore interface {
	SaveSecretKey(identityID string, secretKeyB64 string) error
	LoadSecretKey(identityID string) (string, error)
}

// ImageStore is the local image cache.
type ImageStore interface {
	CreateImageDirectory() error
	SaveImage(imageName string, base64Image string) (filename string, err error)
	RetrieveImage(filename string) (base64Image string, err error)
}

// StateStore loads and saves application state.
type StateStore interface {
	LoadState() (domaintypes.AppState, error)
	SaveState(state domaintypes.AppState) error
}
