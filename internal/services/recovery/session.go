package recovery

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"brightrec/internal/crypto"
	"brightrec/internal/domain"
	"brightrec/internal/protocol/advert"
	"brightrec/internal/protocol/cosign"
)

// DefaultSessionTTL bounds how long a recovery session stays usable.
const DefaultSessionTTL = 24 * time.Hour

func (s *Service) expired(session domain.RecoverySession) bool {
	if s.ttl <= 0 || !session.Started() {
		return false
	}
	return s.now().Sub(time.UnixMilli(session.CreatedAt)) > s.ttl
}

// BeginSession starts or resumes the recovery session. A live session keeps
// its keypair and timestamp and has its signatures reset; an absent or
// expired one is replaced with a fresh keypair.
func (s *Service) BeginSession(ctx context.Context) (domain.RecoverySession, error) {
	session, ok, err := s.sessions.LoadSession()
	if err != nil {
		return domain.RecoverySession{}, fmt.Errorf("load session: %w", err)
	}

	if ok && session.Started() && !s.expired(session) {
		session.Signatures = []domain.Cosignature{}
		if err := s.sessions.SaveSession(session); err != nil {
			return domain.RecoverySession{}, fmt.Errorf("save session: %w", err)
		}
		log.WithField("timestamp", session.CreatedAt).Debug("resumed recovery session")
		return session, nil
	}
	if ok && s.expired(session) {
		log.WithField("timestamp", session.CreatedAt).Info("recovery session expired, starting a new one")
	}

	pub, priv, err := crypto.GenerateSigningKeypair()
	if err != nil {
		return domain.RecoverySession{}, fmt.Errorf("generate signing key: %w", err)
	}
	defer crypto.Wipe(priv[:])

	session = domain.RecoverySession{
		SigningPublicKey: crypto.B64(pub[:]),
		SigningSecretKey: crypto.B64(priv[:]),
		CreatedAt:        s.now().UnixMilli(),
		Signatures:       []domain.Cosignature{},
	}
	if err := s.sessions.SaveSession(session); err != nil {
		return domain.RecoverySession{}, fmt.Errorf("save session: %w", err)
	}
	log.WithField("timestamp", session.CreatedAt).Info("started recovery session")
	return session, nil
}

// current loads the live session or returns a no-session or expired error.
func (s *Service) current(op string) (domain.RecoverySession, error) {
	session, ok, err := s.sessions.LoadSession()
	if err != nil {
		return domain.RecoverySession{}, fmt.Errorf("%s: load session: %w", op, err)
	}
	if !ok || !session.Started() {
		return domain.RecoverySession{}, &domain.Error{Kind: domain.KindNoSession, Op: op}
	}
	if s.expired(session) {
		return domain.RecoverySession{}, &domain.Error{Kind: domain.KindSessionExpired, Op: op}
	}
	return session, nil
}

// Advertisement renders the QR token for the current session.
func (s *Service) Advertisement(ctx context.Context) (string, error) {
	session, err := s.current("advertise session")
	if err != nil {
		return "", err
	}
	return advert.Encode(advert.FromSession(session))
}

// AcceptSignature offers sig to the session. Ready is true only for the
// signature that completes the threshold.
func (s *Service) AcceptSignature(ctx context.Context, sig *domain.Cosignature) (domain.AcceptResult, error) {
	session, err := s.current("accept signature")
	if err != nil {
		return domain.AcceptResult{}, err
	}
	if sig != nil {
		if err := cosign.Validate(*sig); err != nil {
			return domain.AcceptResult{}, fmt.Errorf("accept signature: invalid cosignature: %w", err)
		}
	}

	next, out := cosign.Apply(session, sig)
	logger := log.WithFields(log.Fields{"from": out.From, "event": out.Event, "to": out.To})
	if out.Changed() {
		if err := s.sessions.SaveSession(next); err != nil {
			return domain.AcceptResult{}, fmt.Errorf("save session: %w", err)
		}
	}
	if out.Notice != "" {
		logger.Info(out.Notice)
	} else {
		logger.Debug("cosignature processed")
	}
	return domain.AcceptResult{Session: next, Ready: out.Ready, Notice: out.Notice}, nil
}

// CancelSession abandons the recovery attempt and forgets its keys and signatures.
func (s *Service) CancelSession(ctx context.Context) error {
	if err := s.sessions.ClearSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	log.Info("recovery session cancelled")
	return nil
}
