package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/gamepole/internal/mines"
)

// fixedSource yields its values in order, wrapping around.
type fixedSource struct {
	values []int
	i      int
}

func (s *fixedSource) IntN(n int) int {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v % n
}

func play(t *testing.T, size int, mineAt []int, input string) (mines.Outcome, string) {
	t.Helper()
	mineCount := len(mineAt) / 2
	if len(mineAt) == 0 {
		mineAt = []int{0}
	}
	board, err := mines.NewBoard(size, mineCount, &fixedSource{values: mineAt})
	require.NoError(t, err)
	require.NoError(t, board.Init())

	log := logrus.New()
	log.SetOutput(io.Discard)

	var out bytes.Buffer
	outcome, err := newREPL(board, strings.NewReader(input), &out, log).run()
	require.NoError(t, err)
	return outcome, out.String()
}

func TestREPLWin(t *testing.T) {
	outcome, out := play(t, 3, []int{2, 2}, "0 0\n")

	assert.Equal(t, mines.Won, outcome)
	assert.Equal(t, "# # #\n# # #\n# # #\n"+
		"> 0 0 0\n0 1 1\n0 1 #\n"+
		"you won\n", out)
}

func TestREPLLose(t *testing.T) {
	outcome, out := play(t, 2, []int{0, 0}, "1 1\n0 0\n")

	assert.Equal(t, mines.Lost, outcome)
	assert.Equal(t, "# #\n# #\n"+
		"> # #\n# 1\n"+
		"> * #\n# 1\n"+
		"boom, you lost\n", out)
}

func TestREPLBadInputKeepsPlaying(t *testing.T) {
	outcome, out := play(t, 2, []int{0, 0}, "\nhello\n5 5\nshow\nquit\n1 1\n")

	assert.Equal(t, mines.InProgress, outcome)
	assert.Contains(t, out, "error: "+errBadInput.Error())
	assert.Contains(t, out, "error: cell (5, 5) is out of bounds [0, 2)")
	assert.NotContains(t, out, "# 1")
}

func TestREPLEndOfInput(t *testing.T) {
	outcome, out := play(t, 2, nil, "")

	assert.Equal(t, mines.InProgress, outcome)
	assert.Equal(t, "# #\n# #\n> \n", out)
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in       string
		row, col int
		ok       bool
	}{
		{"1 2", 1, 2, true},
		{"  3   4 ", 3, 4, true},
		{"1", 0, 0, false},
		{"1 2 3", 0, 0, false},
		{"a b", 0, 0, false},
	}
	for _, test := range tests {
		row, col, err := parseMove(test.in)
		if !test.ok {
			assert.ErrorIs(t, err, errBadInput, test.in)
			continue
		}
		require.NoError(t, err, test.in)
		assert.Equal(t, test.row, row)
		assert.Equal(t, test.col, col)
	}
}
