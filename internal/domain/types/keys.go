package types

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Ed25519Private is an Ed25519 signing private key (ed25519.PrivateKey layout).
type Ed25519Private [64]byte
