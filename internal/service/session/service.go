package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/game"
)

var ErrSessionNotFound = errors.New("session not found")

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 2 * time.Hour

// Options tunes the session service. Zero values pick defaults.
type Options struct {
	TTL    time.Duration
	Now    func() time.Time
	Secret func() int
	Logger *zap.Logger
}

type entry struct {
	mu       sync.Mutex
	state    *session.State
	lastSeen atomic.Int64
}

// Service owns every live session. Each session has its own lock, so events
// for one session run one at a time while other sessions proceed.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	ttl    time.Duration
	now    func() time.Time
	secret func() int
	logger *zap.Logger
}

// NewService bootstraps the in-memory session service.
func NewService(opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Secret == nil {
		opts.Secret = game.NewNumberGuesser(nil).NewSecret
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		sessions: make(map[string]*entry),
		ttl:      opts.TTL,
		now:      opts.Now,
		secret:   opts.Secret,
		logger:   opts.Logger,
	}
}

// Create provisions a new session and returns its identifier. Idle sessions
// past their TTL are dropped on the way.
func (s *Service) Create(_ context.Context) (string, error) {
	now := s.now()
	id := uuid.NewString()

	e := &entry{state: session.New(id, s.secret(), now)}
	e.lastSeen.Store(now.UnixNano())

	s.mu.Lock()
	expired := s.sweepLocked(now)
	s.sessions[id] = e
	total := len(s.sessions)
	s.mu.Unlock()

	s.logger.Info("session created",
		zap.String("session", id),
		zap.Int("expired", expired),
		zap.Int("live", total),
	)
	return id, nil
}

// Do runs fn with exclusive access to the session's state.
func (s *Service) Do(ctx context.Context, id string, fn func(*session.State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e, err := s.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := s.now()
	e.lastSeen.Store(now.UnixNano())
	e.state.LastSeen = now
	return fn(e.state)
}

// End discards a session.
func (s *Service) End(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.logger.Info("session ended", zap.String("session", id))
	return nil
}

// Count reports the number of sessions currently held.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Service) lookup(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	if s.expired(e, s.now()) {
		s.mu.Lock()
		if current, ok := s.sessions[id]; ok && current == e {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (s *Service) expired(e *entry, now time.Time) bool {
	return now.Sub(time.Unix(0, e.lastSeen.Load())) > s.ttl
}

func (s *Service) sweepLocked(now time.Time) int {
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
