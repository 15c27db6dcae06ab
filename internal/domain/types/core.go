package types

// BackupKey names an entry in the remote recovery store. Photos use the
// owner's identity id as key.
type BackupKey string

// String returns the string form of the key.
func (k BackupKey) String() string { return string(k) }

// DataKey holds the structural bundle of profile, connections and groups.
const DataKey BackupKey = "data"
