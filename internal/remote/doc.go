// Package remote provides HTTP implementations of the domain.BackupStore and
// domain.NodeClient interfaces.
//
// The recovery store is an untrusted key-value service holding opaque
// ciphertext under (hashed identity, key). The node accepts signed
// operations for trusted-connection lists and signing-key rotation.
//
// All requests are JSON over HTTP and accept a context for cancellation.
// Every attempt runs under its own timeout; transient failures (transport
// errors, 5xx, 429) are retried with exponential backoff, while other non-2xx
// statuses are returned at once as *StatusError with the method, path and
// status text to aid diagnostics.
package remote
