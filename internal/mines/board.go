package mines

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Source picks mine positions. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

const (
	symbolClosed = "#"
	symbolMine   = "*"
)

// Board is an N×N minesweeper field. It is not safe for concurrent use; a
// host serving several games gives each one its own Board.
type Board struct {
	GameParams
	cells [][]Cell
	src   Source
}

func NewBoard(size, mineCount int, src Source) (*Board, error) {
	params := GameParams{Size: size, MineCount: mineCount}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfiguration)
	}
	return &Board{GameParams: params, src: src}, nil
}

func (b *Board) Params() GameParams {
	return b.GameParams
}

// Init allocates a fresh grid and places mines on it. Any previous state is
// discarded, so calling it again resets the game.
func (b *Board) Init() error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.src == nil {
		return fmt.Errorf("%w: nil random source", ErrInvalidConfiguration)
	}

	b.cells = make([][]Cell, b.Size)
	for row := range b.cells {
		b.cells[row] = make([]Cell, b.Size)
	}

	return b.PlaceMines()
}

// PlaceMines clears any previous layout and draws random positions until
// MineCount distinct cells hold a mine, then caches every cell's adjacency
// count.
func (b *Board) PlaceMines() error {
	if !b.initialized() {
		return ErrNotInitialized
	}

	for row := range b.cells {
		for col := range b.cells[row] {
			b.cells[row][col].hasMine = false
		}
	}

	placed, draws := 0, 0
	for placed < b.MineCount {
		draws++
		row := b.src.IntN(b.Size)
		col := b.src.IntN(b.Size)

		if cell := &b.cells[row][col]; !cell.HasMine() {
			cell.PlaceMine()
			placed++
		}
	}

	for row := range b.Size {
		for col := range b.Size {
			b.cells[row][col].SetAdjacentMineCount(b.countAdjacent(row, col))
		}
	}

	Log.WithFields(logrus.Fields{
		"params": b.GameParams.String(),
		"draws":  draws,
	}).Debug("mines placed")

	return nil
}

func (b *Board) initialized() bool {
	return len(b.cells) == b.Size && b.Size > 0
}

func (b *Board) check(row, col int) error {
	if !b.initialized() {
		return ErrNotInitialized
	}
	if !b.PointInBounds(row, col) {
		return OutOfBoundsError{Row: row, Col: col, Size: b.Size}
	}
	return nil
}

// neighbours calls fn for every cell around (row, col), clipped to the grid.
// The cell itself is skipped.
func (b *Board) neighbours(row, col int, fn func(r, c int)) {
	for r := max(0, row-1); r < min(row+2, b.Size); r++ {
		for c := max(0, col-1); c < min(col+2, b.Size); c++ {
			if r != row || c != col {
				fn(r, c)
			}
		}
	}
}

func (b *Board) countAdjacent(row, col int) int {
	count := 0
	b.neighbours(row, col, func(r, c int) {
		if b.cells[r][c].HasMine() {
			count++
		}
	})
	return count
}

// AdjacentMineCount scans the grid instead of trusting the cell cache.
func (b *Board) AdjacentMineCount(row, col int) (int, error) {
	if err := b.check(row, col); err != nil {
		return 0, err
	}
	return b.countAdjacent(row, col), nil
}

func (b *Board) Cell(row, col int) (*Cell, error) {
	if err := b.check(row, col); err != nil {
		return nil, err
	}
	return &b.cells[row][col], nil
}

// OpenCell opens (row, col). A safe cell with no adjacent mines opens its
// neighbours as well, and so on until the region is bounded by numbered
// cells. Opening a mine never cascades.
func (b *Board) OpenCell(row, col int) error {
	if err := b.check(row, col); err != nil {
		return err
	}

	todo := []Point{{Row: row, Col: col}}
	for len(todo) > 0 {
		p := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		cell := &b.cells[p.Row][p.Col]
		if cell.IsOpen() {
			continue
		}
		cell.Open()

		if cell.HasMine() || b.countAdjacent(p.Row, p.Col) != 0 {
			continue
		}
		b.neighbours(p.Row, p.Col, func(r, c int) {
			if !b.cells[r][c].IsOpen() {
				todo = append(todo, Point{Row: r, Col: c})
			}
		})
	}

	return nil
}

func (b *Board) symbol(row, col int) string {
	cell := b.cells[row][col]
	switch {
	case !cell.IsOpen():
		return symbolClosed
	case cell.HasMine():
		return symbolMine
	default:
		return strconv.Itoa(b.countAdjacent(row, col))
	}
}

// View returns the player's view of the grid, one string per cell.
func (b *Board) View() [][]string {
	view := make([][]string, len(b.cells))
	for row := range b.cells {
		view[row] = make([]string, len(b.cells[row]))
		for col := range b.cells[row] {
			view[row][col] = b.symbol(row, col)
		}
	}
	return view
}

func (b *Board) Show() string {
	var sb strings.Builder
	for _, row := range b.View() {
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// [Board] implements [fmt.Stringer]
func (b *Board) String() string {
	return b.Show()
}

func (b *Board) Outcome() Outcome {
	if !b.initialized() {
		return InProgress
	}
	outcome := Won
	for _, cells := range b.cells {
		for _, cell := range cells {
			if cell.HasMine() && cell.IsOpen() {
				return Lost
			}
			if cell.HasMine() == cell.IsOpen() {
				outcome = InProgress
			}
		}
	}
	return outcome
}

// IsGameOver reports whether a mine has been opened or every safe cell has.
func (b *Board) IsGameOver() bool {
	return b.Outcome() != InProgress
}

func (b *Board) Mines() []Point {
	points := make([]Point, 0, b.MineCount)
	for row, cells := range b.cells {
		for col, cell := range cells {
			if cell.HasMine() {
				points = append(points, Point{Row: row, Col: col})
			}
		}
	}
	return points
}

func (b *Board) OpenCount() int {
	n := 0
	for _, cells := range b.cells {
		for _, cell := range cells {
			if cell.IsOpen() {
				n++
			}
		}
	}
	return n
}
