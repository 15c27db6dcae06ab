package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightrec/internal/backupsrv"
	"brightrec/internal/domain"
	"brightrec/internal/remote"
)

func newBackupClient(t *testing.T) (*remote.BackupHTTP, *backupsrv.MemoryBackend) {
	t.Helper()
	backend := backupsrv.NewMemoryBackend()
	srv := httptest.NewServer(backupsrv.NewRouter(backend, 0))
	t.Cleanup(srv.Close)
	return remote.NewBackupHTTP(srv.URL, srv.Client()), backend
}

func TestBackupHTTP_PutGet(t *testing.T) {
	ctx := context.Background()
	c, backend := newBackupClient(t)

	require.NoError(t, c.PutRecovery(ctx, "hash-1", domain.DataKey, "cipher-1"))
	require.NoError(t, c.PutRecovery(ctx, "hash-1", domain.DataKey, "cipher-2"))
	got, err := c.GetRecovery(ctx, "hash-1", domain.DataKey)
	require.NoError(t, err)
	assert.Equal(t, "cipher-2", got)
	assert.Equal(t, 1, backend.Len())
}

func TestBackupHTTP_PathEscaping(t *testing.T) {
	ctx := context.Background()
	c, backend := newBackupClient(t)

	// safeHash output is URL-safe, but photo keys are identity ids.
	require.NoError(t, c.PutRecovery(ctx, "h_-x", domain.BackupKey("id with space"), "v"))
	got, err := backend.Get(ctx, "h_-x", "id with space")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestBackupHTTP_NotFoundIsPermanent(t *testing.T) {
	c, _ := newBackupClient(t)

	start := time.Now()
	_, err := c.GetRecovery(context.Background(), "missing", domain.DataKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrNotFound)

	var se *remote.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Less(t, time.Since(start), time.Second, "4xx must not be retried")
}

func TestNodeHTTP_Operations(t *testing.T) {
	var (
		mu  sync.Mutex
		got []map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/operations", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		got = append(got, body)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"data":{"hash":"op-hash"}}`))
	}))
	defer srv.Close()

	c := remote.NewNodeHTTP(srv.URL, srv.Client())
	ctx := context.Background()
	require.NoError(t, c.SetTrusted(ctx, domain.TrustedRequest{ID: "u1", Trusted: []string{"a", "b"}, Timestamp: 7, Sig: "s"}))
	require.NoError(t, c.SetSigningKey(ctx, domain.SigningKeyRequest{
		ID: "u1", SigningKey: "pk", Timestamp: 9, ID1: "a", ID2: "b", Sig1: "s1", Sig2: "s2",
	}))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, "Set Trusted Connections", got[0]["name"])
	assert.Equal(t, []any{"a", "b"}, got[0]["trusted"])
	assert.EqualValues(t, 5, got[0]["v"])
	assert.Equal(t, "Set Signing Key", got[1]["name"])
	assert.Equal(t, "s2", got[1]["sig2"])
	assert.Equal(t, "b", got[1]["id2"])
	assert.EqualValues(t, 9, got[1]["timestamp"])
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"hash":"h"}}`))
	}))
	defer srv.Close()

	c := remote.NewNodeHTTP(srv.URL, srv.Client())
	require.NoError(t, c.SetTrusted(context.Background(), domain.TrustedRequest{ID: "u1"}))
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_RejectionNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"invalid signatures"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := remote.NewNodeHTTP(srv.URL, srv.Client())
	err := c.SetSigningKey(context.Background(), domain.SigningKeyRequest{ID: "u1"})
	var se *remote.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.Contains(t, se.Error(), "invalid signatures")
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_SingleAttemptWhenNoRetryBudget(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := remote.NewBackupHTTP(srv.URL, srv.Client())
	c.MaxElapsed = 0
	_, err := c.GetRecovery(context.Background(), "h", domain.DataKey)
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_ContextCancelStopsRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	c := remote.NewBackupHTTP(srv.URL, srv.Client())
	start := time.Now()
	err := c.PutRecovery(ctx, "h", domain.DataKey, "x")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// hangingServer never answers until the test ends or the client gives up.
func hangingServer(t *testing.T) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv
}

func TestClient_PerAttemptTimeout(t *testing.T) {
	srv := hangingServer(t)

	c := remote.NewBackupHTTP(srv.URL, srv.Client())
	c.Timeout = 100 * time.Millisecond
	c.MaxElapsed = 500 * time.Millisecond

	start := time.Now()
	_, err := c.GetRecovery(context.Background(), "h", domain.DataKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestNodeHTTP_SetSigningKeySingleAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := remote.NewNodeHTTP(srv.URL, srv.Client())
	err := c.SetSigningKey(context.Background(), domain.SigningKeyRequest{ID: "u1"})
	var se *remote.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 30*time.Second, c.MaxElapsed, "other operations keep their retry budget")
}
