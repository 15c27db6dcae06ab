package recovery

import (
	"time"

	"brightrec/internal/domain"
)

// Options tunes a Service. Zero values select defaults.
type Options struct {
	// Concurrency bounds parallel photo restores.
	Concurrency int
	// SessionTTL bounds session lifetime; negative disables expiry.
	SessionTTL time.Duration
	// Now overrides the clock.
	Now func() time.Time
}

// Service implements domain.RecoveryService.
type Service struct {
	sessions domain.SessionStore
	keys     domain.KeyStore
	images   domain.ImageStore
	state    domain.StateStore
	store    domain.BackupStore
	node     domain.NodeClient
	progress domain.ProgressSink

	limit int
	ttl   time.Duration
	now   func() time.Time
}

// New returns a recovery service over the given stores and clients.
func New(
	sessions domain.SessionStore,
	keys domain.KeyStore,
	images domain.ImageStore,
	state domain.StateStore,
	store domain.BackupStore,
	node domain.NodeClient,
	progress domain.ProgressSink,
	opts Options,
) *Service {
	s := &Service{
		sessions: sessions,
		keys:     keys,
		images:   images,
		state:    state,
		store:    store,
		node:     node,
		progress: progress,
		limit:    opts.Concurrency,
		ttl:      opts.SessionTTL,
		now:      opts.Now,
	}
	if s.ttl == 0 {
		s.ttl = DefaultSessionTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

var _ domain.RecoveryService = (*Service)(nil)
