package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/gamepole/internal/session"
)

type wsCommand string

const (
	wsFetch wsCommand = "g"
	wsOpen  wsCommand = "o"
)

var ErrBadCommand = errors.New("command must be 'g' or 'o <row> <col>'")

func parseRowCol(args []string) (row, col int, err error) {
	if len(args) != 2 {
		return 0, 0, ErrBadCommand
	}
	row, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row: %w", err)
	}
	col, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid col: %w", err)
	}
	return row, col, nil
}

// execute runs one command line against a locked session.
func (g *GameHandler) execute(s *session.Session, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsFetch:
		s.Touch(g.now())
		return nil
	case wsOpen:
		row, col, err := parseRowCol(args)
		if err != nil {
			return err
		}
		return g.open(s, row, col)
	default:
		return ErrBadCommand
	}
}

// Connect upgrades to a websocket. Every text message holds newline separated
// commands; the game state is sent back after each message and the
// connection is closed once the game is over.
func (g *GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok || !g.authorized(w, r, s) {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Debug("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := g.log.WithField("game_id", s.ID)
	log.Debug("websocket connected")

	if err := g.runGameLoop(conn, s); err != nil &&
		!websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.WithError(err).Info("websocket closed")
	}
}

func (g *GameHandler) runGameLoop(conn *websocket.Conn, s *session.Session) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			continue
		}

		var cmdErr error
		s.Lock()
		for _, line := range byPiece(string(buf), "\n") {
			if cmdErr = g.execute(s, line); cmdErr != nil {
				break
			}
			if s.Board.IsGameOver() {
				break
			}
		}
		res := NewGameSessionDTO(s)
		s.Unlock()

		// bad input leaves the game untouched, so report it and carry on
		if cmdErr != nil {
			if err := conn.WriteJSON(wrapError(cmdErr)); err != nil {
				return err
			}
		}

		if err := conn.WriteJSON(res); err != nil {
			return err
		}

		if res.GameOver {
			return conn.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, res.Outcome.String()),
			)
		}
	}
}
