package app

import (
	"errors"
	"net/http"
	"os"

	"brightrec/internal/domain"
	"brightrec/internal/progress"
	"brightrec/internal/remote"
	backupsvc "brightrec/internal/services/backup"
	recoverysvc "brightrec/internal/services/recovery"
	signersvc "brightrec/internal/services/signer"
	"brightrec/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Sessions domain.SessionStore
	Keys     domain.KeyStore
	Images   domain.ImageStore
	State    domain.StateStore

	Backups domain.BackupStore
	Node    domain.NodeClient

	Progress *progress.Emitter

	Recovery *recoverysvc.Service
	Backup   *backupsvc.Service
	Signer   *signersvc.Service
	HTTP     *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if cfg.Home == "" {
		return nil, errors.New("config: empty home directory")
	}
	if cfg.KeystorePassphrase == "" {
		return nil, errors.New("config: keystore passphrase required (BRIGHTREC_KEYSTORE_PASSPHRASE)")
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	// File-based stores
	sessionStore := store.NewSessionFileStore(cfg.Home)
	keyStore := store.NewKeyFileStore(cfg.Home, cfg.KeystorePassphrase)
	imageStore := store.NewImageFileStore(cfg.Home)
	stateStore := store.NewStateFileStore(cfg.Home)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	// Remote clients share the HTTP client; each call gets its own timeout.
	backups := remote.NewBackupHTTP(cfg.BackupURL, httpClient)
	node := remote.NewNodeHTTP(cfg.NodeURL, httpClient)
	if cfg.RequestTimeout > 0 {
		backups.Timeout = cfg.RequestTimeout
		node.Timeout = cfg.RequestTimeout
	}

	emitter := progress.NewEmitter()

	// High-level services
	recovery := recoverysvc.New(sessionStore, keyStore, imageStore, stateStore, backups, node, emitter,
		recoverysvc.Options{Concurrency: cfg.Concurrency, SessionTTL: cfg.SessionTTL})
	backup := backupsvc.New(keyStore, imageStore, backups, node, emitter, cfg.Concurrency)
	signer := signersvc.New(stateStore, keyStore, imageStore)

	return &Wire{
		Sessions: sessionStore,
		Keys:     keyStore,
		Images:   imageStore,
		State:    stateStore,
		Backups:  backups,
		Node:     node,
		Progress: emitter,
		Recovery: recovery,
		Backup:   backup,
		Signer:   signer,
		HTTP:     httpClient,
	}, nil
}
