package types

// UserState is the local user's slice of application state.
type UserState struct {
	Profile
	Password        string `json:"password,omitempty"`
	HashedID        string `json:"hashedId,omitempty"`
	BackupCompleted bool   `json:"backupCompleted"`
}

// AppState is the application state consumed by the backup writer and
// populated by a completed recovery.
type AppState struct {
	User               UserState    `json:"user"`
	Connections        []Connection `json:"connections"`
	Groups             []Group      `json:"groups"`
	TrustedConnections []string     `json:"trustedConnections"`
}
