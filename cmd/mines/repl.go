package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/gamepole/internal/mines"
)

var errBadInput = errors.New(`expected "<row> <col>", "show" or "quit"`)

type repl struct {
	board *mines.Board
	in    *bufio.Scanner
	out   io.Writer
	log   logrus.FieldLogger
}

func newREPL(board *mines.Board, in io.Reader, out io.Writer, log logrus.FieldLogger) *repl {
	return &repl{
		board: board,
		in:    bufio.NewScanner(in),
		out:   out,
		log:   log,
	}
}

func parseMove(line string) (row, col int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errBadInput
	}
	if row, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, errBadInput
	}
	if col, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, errBadInput
	}
	return row, col, nil
}

// run plays until the game is over, the player quits or input runs out.
func (r *repl) run() (mines.Outcome, error) {
	fmt.Fprint(r.out, r.board.Show())

	for {
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return mines.InProgress, r.in.Err()
		}

		line := strings.TrimSpace(r.in.Text())
		switch line {
		case "":
			continue
		case "q", "quit":
			return mines.InProgress, nil
		case "show":
			fmt.Fprint(r.out, r.board.Show())
			continue
		}

		row, col, err := parseMove(line)
		if err == nil {
			err = r.board.OpenCell(row, col)
		}
		if err != nil {
			fmt.Fprintf(r.out, "error: %s\n", err)
			continue
		}
		r.log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("opened cell")

		fmt.Fprint(r.out, r.board.Show())

		if r.board.IsGameOver() {
			outcome := r.board.Outcome()
			if outcome == mines.Lost {
				fmt.Fprintln(r.out, "boom, you lost")
			} else {
				fmt.Fprintln(r.out, "you won")
			}
			return outcome, nil
		}
	}
}
