package mines

// Cell is a single square of a [Board]. It is owned by the board's grid and
// mutated in place.
type Cell struct {
	hasMine  bool
	open     bool
	adjacent int
}

func (c *Cell) Open() {
	c.open = true
}

// PlaceMine is only meant to be called while the board is being set up.
func (c *Cell) PlaceMine() {
	c.hasMine = true
}

func (c Cell) HasMine() bool {
	return c.hasMine
}

func (c Cell) IsOpen() bool {
	return c.open
}

// AdjacentMineCount returns the cached count set by [Cell.SetAdjacentMineCount].
func (c Cell) AdjacentMineCount() int {
	return c.adjacent
}

func (c *Cell) SetAdjacentMineCount(n int) {
	c.adjacent = n
}
