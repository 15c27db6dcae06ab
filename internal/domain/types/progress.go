package types

// Signal names a progress notification consumed by progress indicators.
type Signal string

const (
	// BackupProgress carries 1 per artifact backed up, 0 per failure.
	BackupProgress Signal = "backupProgress"
	// RestoreProgress carries 1 per artifact restored, 0 per failure.
	RestoreProgress Signal = "restoreProgress"
	// RestoreTotal carries the number of restore steps, emitted once.
	RestoreTotal Signal = "restoreTotal"
)

// ProgressEvent is one emitted progress value.
type ProgressEvent struct {
	Signal Signal
	Value  int
}
