package signer

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"brightrec/internal/crypto"
	"brightrec/internal/domain"
	"brightrec/internal/protocol/advert"
)

// ErrNotConnection is returned when the recovering identity is not one of
// the local user's connections.
var ErrNotConnection = errors.New("recovering identity is not a connection")

// Service signs recovery requests with the local user's signing key.
type Service struct {
	state  domain.StateStore
	keys   domain.KeyStore
	images domain.ImageStore
}

// New returns a signer backed by the local state, keys and images.
func New(state domain.StateStore, keys domain.KeyStore, images domain.ImageStore) *Service {
	return &Service{state: state, keys: keys, images: images}
}

// Sign vouches that the key advertised in token belongs to recovering.
// The cosignature carries the connection's name and, when stored locally,
// its photo, so the recovering device can show who it is restoring.
func (s *Service) Sign(ctx context.Context, token string, recovering domain.Profile) (domain.Cosignature, error) {
	ad, err := advert.Parse(token)
	if err != nil {
		return domain.Cosignature{}, err
	}

	st, err := s.state.LoadState()
	if err != nil {
		return domain.Cosignature{}, fmt.Errorf("load state: %w", err)
	}
	me := st.User.ID
	if me == "" {
		return domain.Cosignature{}, errors.New("sign recovery: no local identity")
	}
	conn, ok := findConnection(st.Connections, recovering.ID)
	if !ok {
		return domain.Cosignature{}, fmt.Errorf("sign recovery for %q: %w", recovering.ID, ErrNotConnection)
	}

	secret, err := s.keys.LoadSecretKey(me)
	if err != nil {
		return domain.Cosignature{}, fmt.Errorf("load secret key: %w", err)
	}
	priv, err := crypto.PrivateKeyFromB64(secret)
	if err != nil {
		return domain.Cosignature{}, fmt.Errorf("decode secret key: %w", err)
	}
	defer crypto.Wipe(priv[:])

	msg := crypto.RecoveryMessage(conn.ID, ad.SigningKey, ad.Timestamp)
	sig := domain.Cosignature{
		SignerID:   me,
		IdentityID: conn.ID,
		Signature:  crypto.B64(crypto.SignEd25519(priv, msg)),
		Name:       recovering.Name,
	}
	if sig.Name == "" {
		sig.Name = conn.Name
	}

	photo := recovering.Photo
	if !photo.HasFile() {
		photo = conn.Photo
	}
	if photo.HasFile() {
		if img, err := s.images.RetrieveImage(photo.Filename); err != nil {
			log.WithField("id", conn.ID).Warnf("attach photo to cosignature: %v", err)
		} else {
			sig.Photo = img
		}
	}

	log.WithFields(log.Fields{"signer": me, "id": conn.ID}).Info("signed recovery request")
	return sig, nil
}

func findConnection(conns []domain.Connection, id string) (domain.Connection, bool) {
	for _, c := range conns {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Connection{}, false
}

var _ domain.SignerService = (*Service)(nil)
