package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrNotInitialized       = errors.New("board is not initialized")
	ErrOutOfBounds          = errors.New("coordinates out of bounds")
)

type OutOfBoundsError struct {
	Row, Col, Size int
}

// [OutOfBoundsError] implements [error]
func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"cell (%d, %d) is out of bounds [0, %d)", e.Row, e.Col, e.Size,
	)
}

func (e OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
