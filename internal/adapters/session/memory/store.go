package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

var _ ports.SessionStore = (*Store)(nil)

// Store keeps sessions in process memory. Sessions untouched for longer than
// the TTL are treated as absent; a zero TTL keeps them forever.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]domain.Session
	ttl       time.Duration
	clock     ports.Clock
	lastSweep time.Time
}

func NewStore(ttl time.Duration, clock ports.Clock) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Store{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
		clock:    clock,
	}
}

func (s *Store) Get(ctx context.Context, id string) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.expired(session) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *Store) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Expired sessions are evicted at most once per TTL, piggybacking on
	// writes so an idle store costs nothing.
	if now := s.clock.Now(); s.ttl > 0 && now.Sub(s.lastSweep) >= s.ttl {
		s.sweepLocked()
		s.lastSweep = now
	}
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() int {
	removed := 0
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len counts live sessions; expired ones awaiting a sweep are not included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, session := range s.sessions {
		if !s.expired(session) {
			n++
		}
	}
	return n
}

func (s *Store) expired(session domain.Session) bool {
	return s.ttl > 0 && s.clock.Now().Sub(session.UpdatedAt) > s.ttl
}
