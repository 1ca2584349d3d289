package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	userID  uint
	expires time.Time
}

// MemoryStore keeps sessions in process. Used when no Redis URL is
// configured and in tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]entry), now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, userID uint, ttl time.Duration) (string, error) {
	sid := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[sid] = entry{userID: userID, expires: s.now().Add(ttl)}
	return sid, nil
}

func (s *MemoryStore) Lookup(_ context.Context, sid string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sid]
	if !ok {
		return 0, ErrNoSession
	}
	if !s.now().Before(e.expires) {
		delete(s.sessions, sid)
		return 0, ErrNoSession
	}
	return e.userID, nil
}

func (s *MemoryStore) Destroy(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len reports live and not yet swept sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for sid, e := range s.sessions {
		if !now.Before(e.expires) {
			delete(s.sessions, sid)
		}
	}
}
