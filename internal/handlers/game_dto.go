package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/gamepole/internal/mines"
	"github.com/vancomm/gamepole/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateNewGameDTO struct {
	Size      int `schema:"size,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type seedDTO struct {
	Seed *uint64 `schema:"seed"`
}

func ParseSeed(src map[string][]string) (*uint64, error) {
	var dto seedDTO
	err := decoder.Decode(&dto, src)
	return dto.Seed, err
}

type Position struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	err := decoder.Decode(&pos, src)
	return pos, err
}

type GameSessionDTO struct {
	GameID    string        `json:"game_id"`
	Token     string        `json:"token,omitempty"`
	Size      int           `json:"size"`
	MineCount int           `json:"mine_count"`
	Outcome   mines.Outcome `json:"outcome"`
	GameOver  bool          `json:"game_over"`
	OpenCount int           `json:"open_count"`
	Grid      [][]string    `json:"grid"`
	Mines     []mines.Point `json:"mines,omitempty"`
	StartedAt int64         `json:"started_at"`
	EndedAt   *int64        `json:"ended_at,omitempty"`
}

// NewGameSessionDTO must be called with s locked.
func NewGameSessionDTO(s *session.Session) *GameSessionDTO {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	outcome := s.Board.Outcome()
	dto := &GameSessionDTO{
		GameID:    s.ID.String(),
		Size:      s.Board.Size,
		MineCount: s.Board.MineCount,
		Outcome:   outcome,
		GameOver:  outcome != mines.InProgress,
		OpenCount: s.Board.OpenCount(),
		Grid:      s.Board.View(),
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
	if dto.GameOver {
		dto.Mines = s.Board.Mines()
	}
	return dto
}
