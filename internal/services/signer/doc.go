// Package signer is the trusted-connection side of recovery: it turns a
// scanned recovery advertisement into a cosignature for one of the local
// user's connections.
package signer
