package mines

import (
	"fmt"
	"math"
)

type GameParams struct {
	Size, MineCount int
}

func (p GameParams) Unpack() (size int, mineCount int) {
	return p.Size, p.MineCount
}

// Validate rejects grids that cannot hold the requested mines. A mine count of
// size*size or more would make rejection sampling spin forever.
func (p GameParams) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d",
			ErrInvalidConfiguration, p.Size)
	}
	if p.Size > math.MaxInt/p.Size {
		return fmt.Errorf("%w: size %d is too large",
			ErrInvalidConfiguration, p.Size)
	}
	if p.MineCount < 0 || p.MineCount >= p.Size*p.Size {
		return fmt.Errorf("%w: mine count must be in [0, %d), got %d",
			ErrInvalidConfiguration, p.Size*p.Size, p.MineCount)
	}
	return nil
}

func (p GameParams) PointInBounds(row, col int) bool {
	return 0 <= row && row < p.Size && 0 <= col && col < p.Size
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Size, p.Size, p.MineCount)
}

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
