package token

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for single process use and tests.
type MemoryStore struct {
	mux  sync.RWMutex
	byID map[string]*Token
	ttl  time.Duration
}

// NewMemoryStore creates a MemoryStore; ttl of 0 keeps tokens without expiry forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{byID: map[string]*Token{}, ttl: ttl}
}

func (s *MemoryStore) Put(_ context.Context, t *Token) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	stamp(t, time.Now(), s.ttl)
	dup := *t
	s.byID[t.ID] = &dup
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Token, error) {
	s.mux.RLock()
	t, ok := s.byID[id]
	s.mux.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if t.Expired(time.Now()) {
		_ = s.Revoke(context.Background(), id)
		return nil, ErrNotFound
	}
	dup := *t
	return &dup, nil
}

func (s *MemoryStore) Revoke(_ context.Context, id string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func stamp(t *Token, now time.Time, ttl time.Duration) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.ExpiresAt.IsZero() && ttl > 0 {
		t.ExpiresAt = now.Add(ttl)
	}
}
