package engine

// EmptyID marks a board cell with no tile.
const EmptyID = -1

// Cell is one entry of the dense board view.
type Cell struct {
	ID    int
	Value int
}

// Empty reports whether no tile occupies the cell.
func (c Cell) Empty() bool {
	return c.ID == EmptyID
}

var emptyCell = Cell{ID: EmptyID, Value: -1}

// Board is a dense row-major view of a tile list. It is always derived and
// never the source of truth.
type Board [][]Cell

// TilesToBoard builds the dense grid for tiles.
// Tiles are assumed to lie inside shape with unique positions. Merge sources
// transiently share a cell with their product; the later tile in the list wins.
func TilesToBoard(tiles []Tile, shape Shape) Board {
	board := make(Board, shape.Rows)
	for r := range board {
		row := make([]Cell, shape.Cols)
		for c := range row {
			row[c] = emptyCell
		}
		board[r] = row
	}
	for _, t := range tiles {
		board[t.Pos.Row][t.Pos.Col] = Cell{ID: t.ID, Value: t.Value}
	}
	return board
}

// FreeCells returns all empty cells in row-major order.
func (b Board) FreeCells() []Position {
	var free []Position
	for r, row := range b {
		for c, cell := range row {
			if cell.Empty() {
				free = append(free, Position{Row: r, Col: c})
			}
		}
	}
	return free
}

// Transpose swaps the row and column axes.
func (b Board) Transpose() Board {
	if len(b) == 0 {
		return Board{}
	}
	out := make(Board, len(b[0]))
	for c := range out {
		col := make([]Cell, len(b))
		for r := range b {
			col[r] = b[r][c]
		}
		out[c] = col
	}
	return out
}
