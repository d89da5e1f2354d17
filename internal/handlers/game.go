package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/gamepole/internal/config"
	"github.com/vancomm/gamepole/internal/middleware"
	"github.com/vancomm/gamepole/internal/mines"
	"github.com/vancomm/gamepole/internal/session"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrUnauthorized = errors.New("token does not grant access to this game")
	ErrBadGameID    = errors.New("invalid game id")
)

type GameHandler struct {
	log     logrus.FieldLogger
	store   *session.Store
	jwt     *config.JWT
	ws      *config.WebSocket
	maxSize int
	now     func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGameHandler(
	log logrus.FieldLogger,
	store *session.Store,
	jwt *config.JWT,
	ws *config.WebSocket,
	maxSize int,
	rnd *rand.Rand,
) *GameHandler {
	handler := &GameHandler{
		log:     log,
		store:   store,
		jwt:     jwt,
		ws:      ws,
		maxSize: maxSize,
		now:     time.Now,
		rnd:     rnd,
	}
	return handler
}

func (g *GameHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /game", g.NewGame)
	mux.HandleFunc("GET /game/{id}", g.Fetch)
	mux.HandleFunc("POST /game/{id}/open", g.Open)
	mux.HandleFunc("DELETE /game/{id}", g.Delete)
	mux.HandleFunc("GET /game/{id}/connect", g.Connect)
}

// source gives every board its own generator; the shared one is not safe for
// concurrent handlers.
func (g *GameHandler) source(seed *uint64) mines.Source {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return rand.New(rand.NewPCG(g.rnd.Uint64(), g.rnd.Uint64()))
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dto, err := ParseCreateNewGameDTO(query)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	seed, err := ParseSeed(query)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	params := mines.GameParams(dto)
	if params.Size > g.maxSize {
		sendErrorOrLog(w, g.log, http.StatusBadRequest,
			fmt.Errorf("%w: size must not exceed %d", mines.ErrInvalidConfiguration, g.maxSize))
		return
	}

	board, err := mines.NewBoard(params.Size, params.MineCount, g.source(seed))
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	s, err := g.store.Create(board)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	token, err := g.jwt.SignGame(s.ID.String(), g.now())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to sign game token")
		return
	}

	g.log.WithFields(logrus.Fields{
		"game_id": s.ID,
		"params":  params.String(),
	}).Debug("created game session")

	s.Lock()
	res := NewGameSessionDTO(s)
	s.Unlock()
	res.Token = token

	sendJSONOrLog(w, g.log, http.StatusCreated, res)
}

// lookup resolves the {id} path value, answering 400/404 itself on failure.
func (g *GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, ErrBadGameID)
		return nil, false
	}
	s, err := g.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendErrorOrLog(w, g.log, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session")
		return nil, false
	}
	return s, true
}

func (g *GameHandler) authorized(w http.ResponseWriter, r *http.Request, s *session.Session) bool {
	claims, ok := middleware.GameClaims(r.Context())
	if !ok || claims.Subject != s.ID.String() {
		sendErrorOrLog(w, g.log, http.StatusUnauthorized, ErrUnauthorized)
		return false
	}
	return true
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	s.Lock()
	s.Touch(g.now())
	res := NewGameSessionDTO(s)
	s.Unlock()

	sendJSONOrLog(w, g.log, http.StatusOK, res)
}

// open applies a move to a locked session.
func (g *GameHandler) open(s *session.Session, row, col int) error {
	if s.Board.IsGameOver() {
		return ErrGameOver
	}
	if err := s.Open(row, col, g.now()); err != nil {
		return err
	}
	if s.Board.IsGameOver() {
		g.log.WithFields(logrus.Fields{
			"game_id": s.ID,
			"outcome": s.Board.Outcome().String(),
		}).Info("game finished")
	}
	return nil
}

func moveStatus(err error) int {
	switch {
	case errors.Is(err, ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, mines.ErrOutOfBounds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (g *GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	s, ok := g.lookup(w, r)
	if !ok || !g.authorized(w, r, s) {
		return
	}

	s.Lock()
	err = g.open(s, pos.Row, pos.Col)
	res := NewGameSessionDTO(s)
	s.Unlock()

	if err != nil {
		status := moveStatus(err)
		if status == http.StatusInternalServerError {
			g.log.WithError(err).Error("unable to open cell")
		}
		sendErrorOrLog(w, g.log, status, err)
		return
	}

	sendJSONOrLog(w, g.log, http.StatusOK, res)
}

func (g *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok || !g.authorized(w, r, s) {
		return
	}

	if err := g.store.Delete(s.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
