package remote

import (
	"context"
	"net/http"
	"net/url"

	"brightrec/internal/domain"
)

// BackupHTTP is a domain.BackupStore backed by the recovery service.
type BackupHTTP struct {
	*Client
}

// NewBackupHTTP returns a recovery-store client for base.
func NewBackupHTTP(base string, hc *http.Client) *BackupHTTP {
	return &BackupHTTP{Client: NewClient(base, hc)}
}

// RecoveryData is the body of recovery-store requests and responses.
type RecoveryData struct {
	Data string `json:"data" validate:"required"`
}

func recoveryPath(hashedID string, key domain.BackupKey) string {
	return "/backups/" + url.PathEscape(hashedID) + "/" + url.PathEscape(key.String())
}

// PutRecovery stores ciphertext under (hashedID, key), replacing any previous value.
func (c *BackupHTTP) PutRecovery(ctx context.Context, hashedID string, key domain.BackupKey, ciphertext string) error {
	return c.do(ctx, http.MethodPut, recoveryPath(hashedID, key), RecoveryData{Data: ciphertext}, nil)
}

// GetRecovery returns the ciphertext stored under (hashedID, key).
func (c *BackupHTTP) GetRecovery(ctx context.Context, hashedID string, key domain.BackupKey) (string, error) {
	var out RecoveryData
	if err := c.do(ctx, http.MethodGet, recoveryPath(hashedID, key), nil, &out); err != nil {
		return "", err
	}
	return out.Data, nil
}

var _ domain.BackupStore = (*BackupHTTP)(nil)
