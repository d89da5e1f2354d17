package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/gamepole/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Store keeps sessions in memory. Each session owns its board; the store lock
// only guards the map.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		now:      time.Now,
	}
}

// Create initializes board and registers it under a fresh id.
func (s *Store) Create(board *mines.Board) (*Session, error) {
	if err := board.Init(); err != nil {
		return nil, err
	}
	now := s.now()
	session := &Session{
		ID:        uuid.New(),
		Board:     board,
		StartedAt: now.UTC(),
		touchedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session, nil
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions untouched for longer than ttl and returns how many
// were removed.
func (s *Store) Sweep(ttl time.Duration) int {
	deadline := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		session.Lock()
		expired := session.touchedAt.Before(deadline)
		session.Unlock()
		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
