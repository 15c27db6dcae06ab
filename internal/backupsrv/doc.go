// Package backupsrv implements the recovery store: an untrusted key-value
// service that keeps opaque backup ciphertext under (hashed identity, key).
//
// Routes
//
//	PUT /backups/{hashedId}/{key}   body {"data": "<ciphertext>"}
//	GET /backups/{hashedId}/{key}   -> {"data": "<ciphertext>"}, 404 when absent
//
// Values are stored as given; the server never sees passwords or plaintext.
// Storage is pluggable: MemoryBackend for tests and development, CouchBackend
// for a persistent CouchDB database.
package backupsrv
