// Package crypto exposes the primitives used by the recovery and backup flows.
//
// Contents
//
//   - Passphrase encryption of backup payloads (Encrypt, Decrypt) in the
//     OpenSSL "Salted__" envelope produced by the mobile client
//   - Storage-key derivation from an identity and password (DerivePasswordKeyHash)
//   - Ed25519 key generation, signing and verification for signing-key rotation
//     (GenerateSigningKeypair, SignEd25519, VerifyEd25519)
//   - The attestation bytes a trusted connection signs (RecoveryMessage)
//   - Base64 helpers and best-effort memory wiping (B64, FromB64, Wipe)
//
// # Notes
//
// Keys are returned as fixed-size array types defined in internal/domain and
// surfaced to the rest of the system as standard base64 text. Decrypt with a
// wrong password usually fails on padding or UTF-8 validation, but it can
// succeed with garbage; callers must validate the decoded structure.
package crypto
