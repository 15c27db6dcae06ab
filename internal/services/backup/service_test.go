package backup_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightrec/internal/crypto"
	"brightrec/internal/domain"
	"brightrec/internal/progress"
	"brightrec/internal/services/backup"
	"brightrec/internal/store"
)

// A 1x1 PNG.
const pngB64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type putCall struct {
	hashedID string
	key      domain.BackupKey
	data     string
}

type fakeBackupStore struct {
	mu    sync.Mutex
	puts  []putCall
	fail  map[domain.BackupKey]bool
	saved map[domain.BackupKey]string
}

func newFakeBackupStore() *fakeBackupStore {
	return &fakeBackupStore{fail: map[domain.BackupKey]bool{}, saved: map[domain.BackupKey]string{}}
}

func (f *fakeBackupStore) PutRecovery(_ context.Context, hashedID string, key domain.BackupKey, ciphertext string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, putCall{hashedID, key, ciphertext})
	if f.fail[key] {
		return errors.New("store unavailable")
	}
	f.saved[key] = ciphertext
	return nil
}

func (f *fakeBackupStore) GetRecovery(_ context.Context, _ string, key domain.BackupKey) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.saved[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

type fakeNode struct {
	trusted []domain.TrustedRequest
	err     error
}

func (f *fakeNode) SetTrusted(_ context.Context, req domain.TrustedRequest) error {
	f.trusted = append(f.trusted, req)
	return f.err
}

func (f *fakeNode) SetSigningKey(context.Context, domain.SigningKeyRequest) error { return nil }

type fixture struct {
	svc     *backup.Service
	keys    *store.KeyFileStore
	images  *store.ImageFileStore
	remote  *fakeBackupStore
	node    *fakeNode
	counter *progress.Counter
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		keys:    store.NewKeyFileStore(dir, "device-pass"),
		images:  store.NewImageFileStore(dir),
		remote:  newFakeBackupStore(),
		node:    &fakeNode{},
		counter: progress.NewCounter(),
	}
	em := progress.NewEmitter()
	em.Subscribe(f.counter.Observe)
	f.svc = backup.New(f.keys, f.images, f.remote, f.node, em, 2)
	require.NoError(t, f.images.CreateImageDirectory())
	return f
}

func (f fixture) savePhoto(t *testing.T, name string) *domain.Photo {
	t.Helper()
	fn, err := f.images.SaveImage(name, pngB64)
	require.NoError(t, err)
	return &domain.Photo{Filename: fn}
}

func TestBackupAll_IssuesOneCallPerArtifact(t *testing.T) {
	f := newFixture(t)
	state := domain.AppState{
		User: domain.UserState{
			Profile:  domain.Profile{ID: "user-1", Name: "Alice", Score: 90, Photo: f.savePhoto(t, "user-1")},
			Password: "secret",
		},
		Connections: []domain.Connection{
			{ID: "c1", Name: "Bob", Photo: f.savePhoto(t, "c1")},
			{ID: "c2", Name: "Carol"},
		},
		Groups: []domain.Group{{ID: "g1", Name: "Friends", Photo: f.savePhoto(t, "g1")}},
	}

	report := f.svc.BackupAll(context.Background(), state)

	require.NoError(t, report.BundleErr)
	require.Len(t, f.remote.puts, 4)
	assert.Equal(t, domain.DataKey, f.remote.puts[0].key, "bundle goes first")
	var keys []domain.BackupKey
	for _, p := range f.remote.puts[1:] {
		keys = append(keys, p.key)
	}
	assert.ElementsMatch(t, []domain.BackupKey{"c1", "g1", "user-1"}, keys)

	wantHash := crypto.DerivePasswordKeyHash("user-1", "secret")
	assert.Equal(t, wantHash, report.HashedID)
	for _, p := range f.remote.puts {
		assert.Equal(t, wantHash, p.hashedID)
	}
	assert.Len(t, report.Photos.Items, 3)
	assert.Equal(t, 3, report.Photos.Succeeded())

	ok, failed := f.counter.Counts(domain.BackupProgress)
	assert.Equal(t, 4, ok)
	assert.Zero(t, failed)
}

func TestBackupAll_PhotoFailureIsIsolated(t *testing.T) {
	f := newFixture(t)
	f.remote.fail["c1"] = true
	state := domain.AppState{
		User: domain.UserState{Profile: domain.Profile{ID: "u"}, Password: "pw"},
		Connections: []domain.Connection{
			{ID: "c1", Photo: f.savePhoto(t, "c1")},
			{ID: "c2", Photo: &domain.Photo{Filename: "missing.jpg"}},
			{ID: "c3", Photo: f.savePhoto(t, "c3")},
		},
	}

	report := f.svc.BackupAll(context.Background(), state)

	require.NoError(t, report.BundleErr)
	failed := report.Photos.Failed()
	require.Len(t, failed, 2)
	ids := []string{failed[0].ID, failed[1].ID}
	assert.ElementsMatch(t, []string{"c1", "c2"}, ids)
	for _, it := range failed {
		assert.ErrorIs(t, it.Err, domain.ErrTransientIO)
	}
	assert.Contains(t, f.remote.saved, domain.BackupKey("c3"))

	ok, bad := f.counter.Counts(domain.BackupProgress)
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, bad, "a missing local image never reaches the store")
}

func TestBackupAll_BundleFailureStillBacksUpPhotos(t *testing.T) {
	f := newFixture(t)
	f.remote.fail[domain.DataKey] = true
	state := domain.AppState{
		User:        domain.UserState{Profile: domain.Profile{ID: "u"}, Password: "pw"},
		Connections: []domain.Connection{{ID: "c1", Photo: f.savePhoto(t, "c1")}},
	}

	report := f.svc.BackupAll(context.Background(), state)
	assert.ErrorIs(t, report.BundleErr, domain.ErrTransientIO)
	assert.Equal(t, 1, report.Photos.Succeeded())
}

func TestBackupUserBundle_Payload(t *testing.T) {
	f := newFixture(t)
	state := domain.AppState{
		User: domain.UserState{
			Profile:  domain.Profile{ID: "u", Name: "Alice", Score: 7, PublicKey: "not-backed-up"},
			Password: "pw",
			HashedID: "cached-hash",
		},
	}

	hashed, err := f.svc.BackupUserBundle(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "cached-hash", hashed)

	plain, err := crypto.Decrypt(f.remote.saved[domain.DataKey], "pw")
	require.NoError(t, err)
	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(plain, &got))
	assert.JSONEq(t, `{"id":"u","name":"Alice","score":7,"photo":null}`, string(got["userData"]))
	assert.JSONEq(t, `[]`, string(got["connections"]))
	assert.JSONEq(t, `[]`, string(got["groups"]))
}

func TestWriteTrustedConnections(t *testing.T) {
	f := newFixture(t)
	pub, priv, err := crypto.GenerateSigningKeypair()
	require.NoError(t, err)
	require.NoError(t, f.keys.SaveSecretKey("u", crypto.B64(priv[:])))

	state := domain.AppState{
		User:               domain.UserState{Profile: domain.Profile{ID: "u"}},
		TrustedConnections: []string{"t1", "t2", "t3"},
	}
	require.NoError(t, f.svc.WriteTrustedConnections(context.Background(), state))

	require.Len(t, f.node.trusted, 1)
	req := f.node.trusted[0]
	assert.Equal(t, "u", req.ID)
	assert.Equal(t, []string{"t1", "t2", "t3"}, req.Trusted)
	assert.InDelta(t, time.Now().UnixMilli(), req.Timestamp, float64(time.Minute.Milliseconds()))

	sig, err := crypto.FromB64(req.Sig)
	require.NoError(t, err)
	assert.True(t, crypto.VerifyEd25519(pub, crypto.TrustedMessage("u", req.Trusted, req.Timestamp), sig))
}

func TestWriteTrustedConnections_Errors(t *testing.T) {
	f := newFixture(t)
	state := domain.AppState{User: domain.UserState{Profile: domain.Profile{ID: "u"}}}

	err := f.svc.WriteTrustedConnections(context.Background(), state)
	assert.ErrorIs(t, err, store.ErrNoKey)

	_, priv, err := crypto.GenerateSigningKeypair()
	require.NoError(t, err)
	require.NoError(t, f.keys.SaveSecretKey("u", crypto.B64(priv[:])))
	f.node.err = errors.New("node down")
	err = f.svc.WriteTrustedConnections(context.Background(), state)
	assert.ErrorContains(t, err, "node down")
}
