package backupsrv

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kivik/kivik/v4"
)

// CouchBackend stores each backup as a CouchDB document "backup:<hashedID>:<key>".
type CouchBackend struct {
	client *kivik.Client
	dbName string
}

// NewCouchBackend returns a backend using dbName on client.
func NewCouchBackend(client *kivik.Client, dbName string) *CouchBackend {
	return &CouchBackend{client: client, dbName: dbName}
}

type backupDoc struct {
	HashedID  string    `json:"hashed_id"`
	Key       string    `json:"key"`
	Data      string    `json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

func docID(hashedID, key string) string {
	return fmt.Sprintf("backup:%s:%s", hashedID, key)
}

// EnsureDB creates the database when it does not exist yet.
func (c *CouchBackend) EnsureDB(ctx context.Context) error {
	exists, err := c.client.DBExists(ctx, c.dbName)
	if err != nil {
		return fmt.Errorf("check database %s: %w", c.dbName, err)
	}
	if exists {
		return nil
	}
	if err := c.client.CreateDB(ctx, c.dbName); err != nil {
		return fmt.Errorf("create database %s: %w", c.dbName, err)
	}
	return nil
}

// Put creates or replaces the backup document.
func (c *CouchBackend) Put(ctx context.Context, hashedID, key, data string) error {
	db := c.client.DB(c.dbName)
	id := docID(hashedID, key)

	var rawDoc map[string]interface{}
	row := db.Get(ctx, id)
	if err := row.ScanDoc(&rawDoc); err == nil {
		rawDoc["data"] = data
		rawDoc["updated_at"] = time.Now().UTC()
		if _, err := db.Put(ctx, id, rawDoc); err != nil {
			return fmt.Errorf("update backup: %w", err)
		}
		return nil
	} else if kivik.HTTPStatus(err) != http.StatusNotFound {
		return fmt.Errorf("read backup: %w", err)
	}

	doc := backupDoc{HashedID: hashedID, Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	if _, err := db.Put(ctx, id, doc); err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	return nil
}

// Get returns the stored ciphertext or ErrNotFound.
func (c *CouchBackend) Get(ctx context.Context, hashedID, key string) (string, error) {
	db := c.client.DB(c.dbName)

	var doc backupDoc
	if err := db.Get(ctx, docID(hashedID, key)).ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get backup: %w", err)
	}
	return doc.Data, nil
}

var _ Backend = (*CouchBackend)(nil)
