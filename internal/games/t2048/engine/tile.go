// Package engine implements the move-resolution core of the merge puzzle:
// the tile model, line collapse, direction dispatch, loss detection and
// pool-based spawning. It has no I/O and no notion of time.
package engine

import "fmt"

// Position is a board cell coordinate.
type Position struct {
	Row int
	Col int
}

// String returns "row,col".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// Shape is the board size. It stays fixed for a game session; only a reset may change it.
type Shape struct {
	Rows int
	Cols int
}

// Cells returns the number of cells on the board.
func (s Shape) Cells() int {
	return s.Rows * s.Cols
}

// Contains reports whether p lies on the board.
func (s Shape) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < s.Rows && p.Col >= 0 && p.Col < s.Cols
}

// Positions returns every cell in row-major order.
func (s Shape) Positions() []Position {
	out := make([]Position, 0, s.Cells())
	for r := range s.Rows {
		for c := range s.Cols {
			out = append(out, Position{Row: r, Col: c})
		}
	}
	return out
}

// Animation is the transient animation state of a tile.
// It is cleared on every clean-up pass.
type Animation int

const (
	AnimNone   Animation = iota
	AnimAppear           // freshly spawned
	AnimPopup            // produced by a merge; counted for score
)

// String returns the animation name used by renderers.
func (a Animation) String() string {
	switch a {
	case AnimAppear:
		return "appear"
	case AnimPopup:
		return "popup"
	default:
		return ""
	}
}

// Tile is a single numbered piece. Value is a level: the displayed number is 2^Value.
type Tile struct {
	ID        int
	Pos       Position
	Value     int
	Merged    bool // merge source awaiting clean-up
	Animation Animation
}

// Number returns the displayed number 2^Value.
func (t Tile) Number() int {
	return 1 << t.Value
}
