// Package main runs the recovery store: an HTTP key-value service holding
// encrypted backups keyed by hashed identity and entry name.
//
// HTTP API
//
//	PUT /backups/{hashedId}/{key}   { "data": "<ciphertext>" }
//	    Store or replace an entry.
//
//	GET /backups/{hashedId}/{key}
//	    Return { "data": "<ciphertext>" }, or 404 when absent.
//
// Configuration (environment or .env)
//
//	RECOVERYD_ADDR       listen address (default :8080)
//	RECOVERYD_BACKEND    "memory" (default) or "couch"
//	RECOVERYD_COUCH_URL  CouchDB URL with credentials
//	RECOVERYD_COUCH_DB   database name (default brightrec_backups)
//	RECOVERYD_MAX_BODY   maximum PUT body in bytes
//	RECOVERYD_LOG_LEVEL  log level (default info)
//	RECOVERYD_LOG_FILE   log file, or "console"
//
// The server never sees passwords or plaintext; it only stores ciphertext.
package main
