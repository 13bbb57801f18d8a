package services

import (
	"sync"
	"time"

	"oppswipe_server/models"
)

// SessionStore is the injected guest-session backend. Production can point
// this at an external cache; the in-memory implementation below is the
// single-process default. There is no eviction in either case.
type SessionStore interface {
	Get(guestID string) (models.GuestSession, bool)
	Put(session models.GuestSession)
	IncrementFetchCount(guestID string) int
}

// InMemorySessionStore keeps guest sessions in a process-local map. The
// mutex only guards map access; two concurrent requests for the same guest
// can still interleave a read-decide-write cycle. That race is a known
// property of the design, not something this store resolves.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.GuestSession
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]models.GuestSession)}
}

func (s *InMemorySessionStore) Get(guestID string) (models.GuestSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[guestID]
	return session, ok
}

func (s *InMemorySessionStore) Put(session models.GuestSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.GuestID] = session
}

func (s *InMemorySessionStore) IncrementFetchCount(guestID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.sessions[guestID]
	session.GuestID = guestID
	session.FetchCount++
	session.LastFetchTime = time.Now().UTC()
	s.sessions[guestID] = session
	return session.FetchCount
}
