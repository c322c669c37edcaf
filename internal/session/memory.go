package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Used when no Redis address is
// configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	timeNow func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		timeNow: time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, sess Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{session: sess}
	if ttl > 0 {
		entry.expiresAt = s.timeNow().Add(ttl)
	}
	s.entries[sess.Token] = entry
	return nil
}

func (s *MemoryStore) Load(_ context.Context, token string) (Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return Session{}, ErrNoSession
	}
	if !entry.expiresAt.IsZero() && !s.timeNow().Before(entry.expiresAt) {
		_ = s.Delete(context.Background(), token)
		return Session{}, ErrNoSession
	}
	return entry.session, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
