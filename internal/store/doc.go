// Package store provides file-based persistence for the recovery client's
// local data.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk with atomic temp-file writes. All methods
// are concurrency-safe via internal locking. Files live under the configured
// home directory.
//
// The package includes stores for:
//   - The in-progress recovery session (SessionFileStore)
//   - Identity secret keys, sealed under a device passphrase (KeyFileStore)
//   - Cached profile, connection and group photos (ImageFileStore)
//   - Application state: profile, connections, groups, backup settings (StateFileStore)
package store
