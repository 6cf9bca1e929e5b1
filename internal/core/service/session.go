package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/telemetry/logger"
	"github.com/yndnr/tunevault-go/internal/telemetry/metric"
)

// Authenticator performs the session exchange.
type Authenticator interface {
	Authenticate(ctx context.Context) (*domain.Session, error)
}

// SessionProvider hands out a currently valid session.
type SessionProvider interface {
	EnsureValid(ctx context.Context) (domain.Session, error)
}

// refreshKey is the single-flight key; there is only ever one session.
const refreshKey = "session"

// SessionStore caches the current session and refreshes it when stale.
//
// Concurrent callers that observe a stale session share one exchange.
// Consumers receive copies; the stored session is replaced wholesale.
type SessionStore struct {
	auth    Authenticator
	ttl     time.Duration
	now     func() time.Time
	metrics *metric.Registry

	mu      sync.RWMutex
	current *domain.Session

	group singleflight.Group
}

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithTTL overrides domain.SessionTTL.
func WithTTL(ttl time.Duration) SessionOption {
	return func(s *SessionStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) {
		s.now = now
	}
}

// WithSessionMetrics records refresh outcomes in reg.
func WithSessionMetrics(reg *metric.Registry) SessionOption {
	return func(s *SessionStore) {
		s.metrics = reg
	}
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore(auth Authenticator, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		auth: auth,
		ttl:  domain.SessionTTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the session lifetime.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// EnsureValid returns the current session, refreshing it first when it is
// absent or stale. A failed refresh leaves the previous session in place.
func (s *SessionStore) EnsureValid(ctx context.Context) (domain.Session, error) {
	if sess, ok := s.fresh(); ok {
		return sess, nil
	}

	// The exchange outlives the caller that started it; each caller stops
	// waiting only when its own context ends. Transport timeouts bound it.
	flight := context.WithoutCancel(ctx)
	ch := s.group.DoChan(refreshKey, func() (any, error) {
		// Another flight may have finished between our check and this one.
		if sess, ok := s.fresh(); ok {
			return sess, nil
		}
		return s.refresh(flight)
	})

	select {
	case <-ctx.Done():
		return domain.Session{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Session{}, res.Err
		}
		if res.Shared {
			logger.L(ctx).Debug("joined in-flight session refresh")
		}
		return res.Val.(domain.Session), nil
	}
}

// Current returns the stored session without refreshing it.
func (s *SessionStore) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// Invalidate drops the stored session; the next EnsureValid refreshes.
func (s *SessionStore) Invalidate() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *SessionStore) fresh() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current.Stale(s.now(), s.ttl) {
		return domain.Session{}, false
	}
	return *s.current, true
}

func (s *SessionStore) refresh(ctx context.Context) (domain.Session, error) {
	log := logger.L(ctx)

	sess, err := s.auth.Authenticate(ctx)
	if err != nil {
		s.metrics.RecordSessionRefresh("error")
		log.Warn("session refresh failed", "error", err)
		return domain.Session{}, err
	}
	if !sess.Valid() {
		s.metrics.RecordSessionRefresh("error")
		return domain.Session{}, domain.ErrAuthentication.WithDetails("incomplete session")
	}

	sess.IssuedAt = s.now()

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.metrics.RecordSessionRefresh("ok")
	log.Info("session refreshed",
		"user_id", sess.UserID,
		"privileged", sess.Privileged,
		"expires_at", sess.ExpiresAt(s.ttl))
	return *sess, nil
}
