package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"brightrec/internal/crypto"
	"brightrec/internal/domain"
	"brightrec/internal/services/fanout"
)

// Service uploads the bundle and photos and publishes the trusted list.
type Service struct {
	keys     domain.KeyStore
	images   domain.ImageStore
	store    domain.BackupStore
	node     domain.NodeClient
	progress domain.ProgressSink
	limit    int
	now      func() time.Time
}

// New returns a backup service. limit bounds concurrent photo uploads.
func New(
	keys domain.KeyStore,
	images domain.ImageStore,
	store domain.BackupStore,
	node domain.NodeClient,
	progress domain.ProgressSink,
	limit int,
) *Service {
	return &Service{
		keys:     keys,
		images:   images,
		store:    store,
		node:     node,
		progress: progress,
		limit:    limit,
		now:      time.Now,
	}
}

// WriteTrustedConnections publishes state's trusted-connection allow-list,
// signed with the user's stored secret key.
func (s *Service) WriteTrustedConnections(ctx context.Context, state domain.AppState) error {
	id := state.User.ID
	secret, err := s.keys.LoadSecretKey(id)
	if err != nil {
		return fmt.Errorf("load secret key: %w", err)
	}
	priv, err := crypto.PrivateKeyFromB64(secret)
	if err != nil {
		return fmt.Errorf("decode secret key: %w", err)
	}
	defer crypto.Wipe(priv[:])

	trusted := append([]string{}, state.TrustedConnections...)
	ts := s.now().UnixMilli()
	req := domain.TrustedRequest{
		ID:        id,
		Trusted:   trusted,
		Timestamp: ts,
		Sig:       crypto.B64(crypto.SignEd25519(priv, crypto.TrustedMessage(id, trusted, ts))),
	}
	if err := s.node.SetTrusted(ctx, req); err != nil {
		return fmt.Errorf("set trusted connections: %w", err)
	}
	log.WithFields(log.Fields{"id": id, "trusted": len(trusted)}).Info("published trusted connections")
	return nil
}

// HashedID returns the storage hash for state's user, reusing a cached one.
func HashedID(state domain.AppState) string {
	if state.User.HashedID != "" {
		return state.User.HashedID
	}
	return crypto.DerivePasswordKeyHash(state.User.ID, state.User.Password)
}

// BackupEntry encrypts data under the user's password and stores it under key.
// It emits BackupProgress 1 on success and 0 on failure.
func (s *Service) BackupEntry(ctx context.Context, state domain.AppState, key domain.BackupKey, data string) (string, error) {
	hashedID := HashedID(state)
	err := s.putEncrypted(ctx, hashedID, state.User.Password, key, data)
	if err != nil {
		s.progress.Emit(domain.ProgressEvent{Signal: domain.BackupProgress, Value: 0})
		return hashedID, err
	}
	s.progress.Emit(domain.ProgressEvent{Signal: domain.BackupProgress, Value: 1})
	return hashedID, nil
}

func (s *Service) putEncrypted(ctx context.Context, hashedID, password string, key domain.BackupKey, data string) error {
	ciphertext, err := crypto.Encrypt([]byte(data), password)
	if err != nil {
		return &domain.Error{Kind: domain.KindTransientIO, Op: "encrypt entry", Key: key.String(), Err: err}
	}
	if err := s.store.PutRecovery(ctx, hashedID, key, ciphertext); err != nil {
		return &domain.Error{Kind: domain.KindTransientIO, Op: "put entry", Key: key.String(), Err: err}
	}
	return nil
}

// BackupPhoto uploads the local image filename under ownerID.
func (s *Service) BackupPhoto(ctx context.Context, state domain.AppState, ownerID, filename string) error {
	img, err := s.images.RetrieveImage(filename)
	if err != nil {
		return &domain.Error{Kind: domain.KindTransientIO, Op: "read photo", Key: ownerID, Err: err}
	}
	_, err = s.BackupEntry(ctx, state, domain.BackupKey(ownerID), img)
	return err
}

type userData struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Score int           `json:"score"`
	Photo *domain.Photo `json:"photo"`
}

type bundlePayload struct {
	UserData    userData            `json:"userData"`
	Connections []domain.Connection `json:"connections"`
	Groups      []domain.Group      `json:"groups"`
}

// BackupUserBundle uploads {userData, connections, groups} under "data" and
// returns the hashed identity used.
func (s *Service) BackupUserBundle(ctx context.Context, state domain.AppState) (string, error) {
	payload := bundlePayload{
		UserData: userData{
			ID:    state.User.ID,
			Name:  state.User.Name,
			Score: state.User.Score,
			Photo: state.User.Photo,
		},
		Connections: nonNil(state.Connections),
		Groups:      nonNil(state.Groups),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode bundle: %w", err)
	}
	return s.BackupEntry(ctx, state, domain.DataKey, string(b))
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// photoItems lists connection photos, group photos and finally the user's
// own photo, skipping entries without a stored image.
func photoItems(state domain.AppState) []fanout.Item {
	var items []fanout.Item
	for _, c := range state.Connections {
		if c.Photo.HasFile() {
			items = append(items, fanout.Item{Kind: domain.ItemConnection, ID: c.ID, Filename: c.Photo.Filename})
		}
	}
	for _, g := range state.Groups {
		if g.Photo.HasFile() {
			items = append(items, fanout.Item{Kind: domain.ItemGroup, ID: g.ID, Filename: g.Photo.Filename})
		}
	}
	if state.User.Photo.HasFile() {
		items = append(items, fanout.Item{Kind: domain.ItemUser, ID: state.User.ID, Filename: state.User.Photo.Filename})
	}
	return items
}

// BackupAll uploads the bundle and then every photo. It always completes;
// failures are recorded in the report.
func (s *Service) BackupAll(ctx context.Context, state domain.AppState) domain.BackupReport {
	runID := uuid.NewString()
	logger := log.WithFields(log.Fields{"run": runID, "id": state.User.ID})

	state.User.HashedID = HashedID(state)
	report := domain.BackupReport{RunID: runID, HashedID: state.User.HashedID}

	if _, err := s.BackupUserBundle(ctx, state); err != nil {
		report.BundleErr = err
		logger.Errorf("backup bundle: %v", err)
	}

	items := photoItems(state)
	report.Photos = fanout.Run(ctx, s.limit, items, func(ctx context.Context, it fanout.Item) error {
		return s.BackupPhoto(ctx, state, it.ID, it.Filename)
	})
	if err := fanout.Err(report.Photos); err != nil {
		logger.Warnf("photo backup incomplete: %v", err)
	}
	logger.WithFields(log.Fields{
		"photos":    len(items),
		"succeeded": report.Photos.Succeeded(),
	}).Info("backup finished")
	return report
}

var _ domain.BackupService = (*Service)(nil)
