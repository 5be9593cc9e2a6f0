package engine

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions returns all four directions.
func Directions() []Direction {
	return []Direction{DirLeft, DirRight, DirUp, DirDown}
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses a direction name (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("engine: unknown direction %q", s)
}

// flags returns the collapse parameters of a direction. Vertical moves run
// as horizontal moves on the transposed board.
func (d Direction) flags() (reverse, transpose bool) {
	switch d {
	case DirRight:
		return true, false
	case DirUp:
		return false, true
	case DirDown:
		return true, true
	default:
		return false, false
	}
}

// Apply moves tiles in dir and returns the updated list and whether anything
// moved. Merge sources stay in the list flagged Merged at their destination;
// each merge appends a product drawn from ids. The input slice is not modified.
// If ids runs dry, identities taken during this move are returned to it and
// the error wraps ErrPoolExhausted.
func Apply(tiles []Tile, shape Shape, dir Direction, ids IDSource) ([]Tile, bool, error) {
	if ids == nil {
		return nil, false, fmt.Errorf("engine: apply %s: nil identity source", dir)
	}
	c := newCollapser(tiles, ids)
	moved, err := run(c, tiles, shape, dir)
	if err != nil {
		c.rollback()
		return nil, false, err
	}
	return c.next, moved, nil
}

// Probe reports whether moving tiles in dir would change the board.
// It creates no tiles and consumes no identities.
func Probe(tiles []Tile, shape Shape, dir Direction) bool {
	moved, _ := run(newCollapser(tiles, nil), tiles, shape, dir)
	return moved
}

func run(c *collapser, tiles []Tile, shape Shape, dir Direction) (bool, error) {
	reverse, transpose := dir.flags()
	board := TilesToBoard(tiles, shape)
	if transpose {
		board = board.Transpose()
	}

	changed := false
	for i, line := range board {
		moved, err := c.collapseLine(line, i, reverse, transpose)
		if err != nil {
			return false, err
		}
		changed = changed || moved
	}
	return changed, nil
}
