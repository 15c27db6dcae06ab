// Package recovery drives account recovery on a new device.
//
// The flow has three stages:
//   - Session: a disposable Ed25519 keypair and timestamp are generated and
//     advertised to trusted connections as a "Recovery_" QR token.
//   - Collection: cosignatures from trusted connections are accepted until
//     two agree on the identity being recovered.
//   - Restore: the bundle is fetched and decrypted with the backup password,
//     the new signing key is published with both cosignatures, state is
//     committed, photos are restored best-effort and the session is cleared.
//
// Signing-key rotation always precedes the state commit, so a rejected
// rotation leaves application state untouched.
package recovery
