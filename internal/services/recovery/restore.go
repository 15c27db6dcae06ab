package recovery

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"brightrec/internal/crypto"
	"brightrec/internal/domain"
	"brightrec/internal/services/fanout"
)

// RotateSigningKey asks the node to adopt the session's public key, backed by
// both cosignatures. On rejection the signatures are cleared so a new round
// can be collected.
func (s *Service) RotateSigningKey(ctx context.Context, session domain.RecoverySession) error {
	const op = "rotate signing key"
	if !session.Ready() {
		return &domain.Error{Kind: domain.KindBadSignatures, Op: op, ID: session.IdentityID,
			Err: fmt.Errorf("have %d matching signatures, need 2", len(session.Signatures))}
	}

	req := domain.SigningKeyRequest{
		ID:         session.IdentityID,
		SigningKey: session.SigningPublicKey,
		Timestamp:  session.CreatedAt,
		ID1:        session.Signatures[0].SignerID,
		ID2:        session.Signatures[1].SignerID,
		Sig1:       session.Signatures[0].Signature,
		Sig2:       session.Signatures[1].Signature,
	}
	if err := s.node.SetSigningKey(ctx, req); err != nil {
		session.Signatures = []domain.Cosignature{}
		if serr := s.sessions.SaveSession(session); serr != nil {
			log.WithField("id", session.IdentityID).Errorf("clear signatures after rejected rotation: %v", serr)
		}
		return &domain.Error{Kind: domain.KindBadSignatures, Op: op, ID: session.IdentityID, Err: err}
	}
	return nil
}

// FetchEntry downloads and decrypts the entry stored under key for
// identityID. Every failure is reported as a bad password.
func (s *Service) FetchEntry(ctx context.Context, key domain.BackupKey, identityID, password string) ([]byte, error) {
	hashedID := crypto.DerivePasswordKeyHash(identityID, password)
	plain, err := s.fetch(ctx, hashedID, key, password)
	if err != nil {
		s.progress.Emit(domain.ProgressEvent{Signal: domain.RestoreProgress, Value: 0})
		return nil, &domain.Error{Kind: domain.KindBadPassword, Op: "fetch entry", Key: key.String(), Err: err}
	}
	s.progress.Emit(domain.ProgressEvent{Signal: domain.RestoreProgress, Value: 1})
	return plain, nil
}

func (s *Service) fetch(ctx context.Context, hashedID string, key domain.BackupKey, password string) ([]byte, error) {
	ciphertext, err := s.store.GetRecovery(ctx, hashedID, key)
	if err != nil {
		return nil, err
	}
	return crypto.Decrypt(ciphertext, password)
}

// storedBundle mirrors the "data" entry; pointers detect absent fields.
type storedBundle struct {
	UserData    *domain.Profile      `json:"userData"`
	Connections *[]domain.Connection `json:"connections"`
	Groups      []domain.Group       `json:"groups"`
}

// RestoreStructuralData stores the session's secret key, then fetches and
// checks the bundle. A bundle without userData or connections is treated as
// a wrong password. The user's own photo is restored best-effort.
func (s *Service) RestoreStructuralData(ctx context.Context, session domain.RecoverySession, password string) (domain.Bundle, error) {
	id := session.IdentityID
	if err := s.keys.SaveSecretKey(id, session.SigningSecretKey); err != nil {
		return domain.Bundle{}, fmt.Errorf("save secret key: %w", err)
	}

	plain, err := s.FetchEntry(ctx, domain.DataKey, id, password)
	if err != nil {
		return domain.Bundle{}, err
	}
	var stored storedBundle
	if err := json.Unmarshal(plain, &stored); err != nil {
		return domain.Bundle{}, &domain.Error{Kind: domain.KindBadPassword, Op: "parse bundle", Key: domain.DataKey.String(), Err: err}
	}
	if stored.UserData == nil || stored.Connections == nil {
		return domain.Bundle{}, &domain.Error{Kind: domain.KindBadPassword, Op: "parse bundle", Key: domain.DataKey.String(),
			Err: fmt.Errorf("bundle lacks userData or connections")}
	}

	bundle := domain.Bundle{
		Profile:     stored.UserData,
		Connections: *stored.Connections,
		Groups:      stored.Groups,
	}
	if bundle.Groups == nil {
		bundle.Groups = []domain.Group{}
	}
	s.progress.Emit(domain.ProgressEvent{
		Signal: domain.RestoreTotal,
		Value:  len(bundle.Connections) + bundle.GroupPhotoCount() + 2,
	})

	bundle.Profile.ID = id
	bundle.Profile.PublicKey = session.SigningPublicKey
	bundle.Profile.Photo = nil
	if photo, err := s.FetchEntry(ctx, domain.BackupKey(id), id, password); err != nil {
		log.WithField("id", id).Warnf("restore own photo: %v", err)
	} else if fn, err := s.images.SaveImage(id, string(photo)); err != nil {
		log.WithField("id", id).Warnf("save own photo: %v", err)
	} else {
		bundle.Profile.Photo = &domain.Photo{Filename: fn}
	}
	return bundle, nil
}

// RestoreWithoutPassword builds a bare profile from what the cosigners
// revealed: no connections, no groups.
func (s *Service) RestoreWithoutPassword(ctx context.Context, session domain.RecoverySession) (domain.Bundle, error) {
	id := session.IdentityID
	profile := &domain.Profile{ID: id, Name: session.Name, PublicKey: session.SigningPublicKey}
	if session.Photo != "" {
		if fn, err := s.images.SaveImage(id, session.Photo); err != nil {
			log.WithField("id", id).Warnf("save photo: %v", err)
		} else {
			profile.Photo = &domain.Photo{Filename: fn}
		}
	}
	if err := s.keys.SaveSecretKey(id, session.SigningSecretKey); err != nil {
		return domain.Bundle{}, fmt.Errorf("save secret key: %w", err)
	}
	return domain.Bundle{Profile: profile, Connections: []domain.Connection{}, Groups: []domain.Group{}}, nil
}

// CompleteRecovery restores the account from a ready session. An empty
// password skips the remote bundle and restores only the bare profile.
//
// Order matters: data is fetched, the signing key is rotated, and only then
// is state committed. Photo failures after the commit are reported in the
// result but do not fail the call.
func (s *Service) CompleteRecovery(ctx context.Context, password string) (domain.RecoveryResult, error) {
	res := domain.RecoveryResult{RunID: uuid.NewString(), Phase: domain.PhaseCollectingSignatures}
	logger := log.WithField("run", res.RunID)
	fail := func(err error) (domain.RecoveryResult, error) {
		logger.WithField("phase", res.Phase).Errorf("recovery failed: %v", err)
		res.Phase = domain.PhaseFailed
		return res, err
	}

	session, err := s.current("complete recovery")
	if err != nil {
		return fail(err)
	}
	if !session.Ready() {
		return fail(&domain.Error{Kind: domain.KindBadSignatures, Op: "complete recovery", ID: session.IdentityID,
			Err: fmt.Errorf("have %d of 2 signatures", len(session.Signatures))})
	}
	res.Phase = domain.PhaseThresholdReached
	logger = logger.WithField("id", session.IdentityID)
	logger.Info("recovery threshold reached")

	if err := s.images.CreateImageDirectory(); err != nil {
		return fail(fmt.Errorf("create image directory: %w", err))
	}

	var bundle domain.Bundle
	if password != "" {
		bundle, err = s.RestoreStructuralData(ctx, session, password)
	} else {
		bundle, err = s.RestoreWithoutPassword(ctx, session)
	}
	if err != nil {
		return fail(err)
	}

	if err := s.RotateSigningKey(ctx, session); err != nil {
		return fail(err)
	}
	res.Phase = domain.PhaseKeyRotated
	logger.Info("signing key rotated")

	state := domain.AppState{
		User:               domain.UserState{Profile: *bundle.Profile},
		Connections:        bundle.Connections,
		Groups:             bundle.Groups,
		TrustedConnections: []string{},
	}
	if err := s.state.SaveState(state); err != nil {
		return fail(fmt.Errorf("commit state: %w", err))
	}
	res.Phase = domain.PhaseDataFetched
	logger.WithFields(log.Fields{
		"connections": len(state.Connections),
		"groups":      len(state.Groups),
	}).Info("restored state committed")

	if password != "" {
		res.Photos = s.restorePhotos(ctx, &state, password)
		if err := fanout.Err(res.Photos); err != nil {
			logger.Warnf("photo restore incomplete: %v", err)
		}
	}
	res.Phase = domain.PhasePhotosFetched

	state.User.BackupCompleted = password != ""
	state.User.Password = password
	if password != "" {
		state.User.HashedID = crypto.DerivePasswordKeyHash(state.User.ID, password)
	}
	if err := s.state.SaveState(state); err != nil {
		return fail(fmt.Errorf("save backup settings: %w", err))
	}
	if err := s.sessions.ClearSession(); err != nil {
		return fail(fmt.Errorf("clear session: %w", err))
	}

	res.Phase = domain.PhaseComplete
	res.BackupCompleted = state.User.BackupCompleted
	res.Bundle = domain.Bundle{Profile: &state.User.Profile, Connections: state.Connections, Groups: state.Groups}
	logger.Info("recovery complete")
	return res, nil
}

// restorePhotos fetches every connection photo and every group photo and
// points state at the saved files. Items that fail lose their photo reference.
func (s *Service) restorePhotos(ctx context.Context, state *domain.AppState, password string) domain.BatchReport {
	id := state.User.ID
	var items []fanout.Item
	for _, c := range state.Connections {
		items = append(items, fanout.Item{Kind: domain.ItemConnection, ID: c.ID})
	}
	for _, g := range state.Groups {
		if g.Photo.HasFile() {
			items = append(items, fanout.Item{Kind: domain.ItemGroup, ID: g.ID})
		}
	}

	var (
		mu    sync.Mutex
		saved = make(map[string]string, len(items))
	)
	report := fanout.Run(ctx, s.limit, items, func(ctx context.Context, it fanout.Item) error {
		photo, err := s.FetchEntry(ctx, domain.BackupKey(it.ID), id, password)
		if err != nil {
			return &domain.Error{Kind: domain.KindTransientIO, Op: "restore photo", ID: it.ID, Err: err}
		}
		fn, err := s.images.SaveImage(it.ID, string(photo))
		if err != nil {
			return &domain.Error{Kind: domain.KindTransientIO, Op: "save photo", ID: it.ID, Err: err}
		}
		mu.Lock()
		saved[it.ID] = fn
		mu.Unlock()
		return nil
	})

	for i := range state.Connections {
		state.Connections[i].Photo = photoRef(saved, state.Connections[i].ID)
	}
	for i := range state.Groups {
		if state.Groups[i].Photo.HasFile() {
			state.Groups[i].Photo = photoRef(saved, state.Groups[i].ID)
		}
	}
	return report
}

func photoRef(saved map[string]string, id string) *domain.Photo {
	if fn, ok := saved[id]; ok {
		return &domain.Photo{Filename: fn}
	}
	return nil
}
