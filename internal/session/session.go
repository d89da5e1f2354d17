package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/gamepole/internal/mines"
)

// Session is one hosted game. Callers must hold the lock while touching the
// board or the timestamps.
type Session struct {
	sync.Mutex
	ID        uuid.UUID
	Board     *mines.Board
	StartedAt time.Time
	EndedAt   *time.Time
	touchedAt time.Time
}

// Open opens a cell and stamps EndedAt once the game is over.
func (s *Session) Open(row, col int, now time.Time) error {
	if err := s.Board.OpenCell(row, col); err != nil {
		return err
	}
	s.touchedAt = now
	if s.EndedAt == nil && s.Board.IsGameOver() {
		endedAt := now.UTC()
		s.EndedAt = &endedAt
	}
	return nil
}

// Touch marks the session as in use so the sweeper keeps it.
func (s *Session) Touch(now time.Time) {
	s.touchedAt = now
}
