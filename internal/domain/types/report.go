package types

// ItemKind says which collection a fan-out item came from.
type ItemKind string

const (
	ItemConnection ItemKind = "connection"
	ItemGroup      ItemKind = "group"
	ItemUser       ItemKind = "user"
)

// ItemResult is the outcome of one best-effort item (a photo backup or restore).
type ItemResult struct {
	Kind ItemKind
	ID   string
	// Filename is the local image file involved, when there is one.
	Filename string
	Err      error
}

// BatchReport collects per-item outcomes of a best-effort loop.
type BatchReport struct {
	Items []ItemResult
}

// Failed returns the items that did not succeed.
func (r BatchReport) Failed() []ItemResult {
	var out []ItemResult
	for _, it := range r.Items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}

// Succeeded returns how many items succeeded.
func (r BatchReport) Succeeded() int { return len(r.Items) - len(r.Failed()) }

// BackupReport summarises one BackupAll run.
type BackupReport struct {
	RunID    string
	HashedID string
	// BundleErr is set when the structural bundle failed to upload.
	BundleErr error
	Photos    BatchReport
}

// Phase is a step of the recovery state machine.
type Phase string

const (
	PhaseCollectingSignatures Phase = "COLLECTING_SIGNATURES"
	PhaseThresholdReached     Phase = "THRESHOLD_REACHED"
	PhaseKeyRotated           Phase = "KEY_ROTATED"
	PhaseDataFetched          Phase = "DATA_FETCHED"
	PhasePhotosFetched        Phase = "PHOTOS_FETCHED"
	PhaseComplete             Phase = "COMPLETE"
	PhaseFailed               Phase = "FAILED"
)

// RecoveryResult is what a completed (or failed) recovery attempt produced.
type RecoveryResult struct {
	RunID           string
	Phase           Phase
	Bundle          Bundle
	BackupCompleted bool
	Photos          BatchReport
}

// AcceptResult is the outcome of offering a cosignature to the session.
type AcceptResult struct {
	Session RecoverySession
	Ready   bool
	// Notice is a user-facing informational message, empty when there is none.
	Notice string
}
