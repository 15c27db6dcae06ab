package app

import (
	"context"
	"fmt"

	"brightrec/internal/domain"
	"brightrec/internal/progress"
)

// App is the facade the CLI commands run against.
type App struct {
	Recovery domain.RecoveryService
	Backup   domain.BackupService
	Signer   domain.SignerService
	State    domain.StateStore
	Progress *progress.Emitter
}

// New builds an App from a wired dependency graph.
func New(w *Wire) *App {
	return &App{
		Recovery: w.Recovery,
		Backup:   w.Backup,
		Signer:   w.Signer,
		State:    w.State,
		Progress: w.Progress,
	}
}

// BackupNow backs up the stored state and records the hashed identity used,
// so later incremental backups reuse it.
func (a *App) BackupNow(ctx context.Context) (domain.BackupReport, error) {
	st, err := a.State.LoadState()
	if err != nil {
		return domain.BackupReport{}, fmt.Errorf("load state: %w", err)
	}
	if st.User.ID == "" {
		return domain.BackupReport{}, fmt.Errorf("backup: no local identity")
	}
	if st.User.Password == "" {
		return domain.BackupReport{}, fmt.Errorf("backup: no backup password set")
	}

	report := a.Backup.BackupAll(ctx, st)
	changed := false
	if report.HashedID != "" && report.HashedID != st.User.HashedID {
		st.User.HashedID = report.HashedID
		changed = true
	}
	if report.BundleErr == nil && !st.User.BackupCompleted {
		st.User.BackupCompleted = true
		changed = true
	}
	if changed {
		if err := a.State.SaveState(st); err != nil {
			return report, fmt.Errorf("save backup settings: %w", err)
		}
	}
	return report, nil
}

// SetPassword stores the backup password used by later backups and clears
// the cached hash derived from the old one.
func (a *App) SetPassword(password string) error {
	st, err := a.State.LoadState()
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	st.User.Password = password
	st.User.HashedID = ""
	st.User.BackupCompleted = false
	return a.State.SaveState(st)
}

// PublishTrusted sends the stored trusted-connection list to the node.
func (a *App) PublishTrusted(ctx context.Context, trusted []string) error {
	st, err := a.State.LoadState()
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if trusted != nil {
		st.TrustedConnections = trusted
		if err := a.State.SaveState(st); err != nil {
			return fmt.Errorf("save trusted connections: %w", err)
		}
	}
	return a.Backup.WriteTrustedConnections(ctx, st)
}
