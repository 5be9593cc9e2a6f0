package engine

import (
	"errors"
	"slices"
	"testing"

	"github.com/matryer/is"
)

// orderedRand never shuffles and always picks the first value.
type orderedRand struct{}

func (orderedRand) Intn(int) int                { return 0 }
func (orderedRand) Shuffle(int, func(i, j int)) {}

// poolAfter returns an unshuffled pool of capacity ids with the first live
// ids already taken, so the next minted id is live.
func poolAfter(capacity, live int) *IDPool {
	p := NewIDPool(capacity, orderedRand{})
	for range live {
		if _, err := p.Take(); err != nil {
			panic(err)
		}
	}
	return p
}

// rowTiles builds tiles from a row-major value grid; 0 marks an empty cell.
// Ids are assigned in reading order starting at 0.
func rowTiles(grid [][]int) ([]Tile, Shape) {
	shape := Shape{Rows: len(grid), Cols: len(grid[0])}
	var tiles []Tile
	for r, row := range grid {
		for c, v := range row {
			if v == 0 {
				continue
			}
			tiles = append(tiles, Tile{ID: len(tiles), Pos: Position{Row: r, Col: c}, Value: v})
		}
	}
	return tiles, shape
}

// valueGrid renders settled tiles back to a value grid.
func valueGrid(tiles []Tile, shape Shape) [][]int {
	grid := make([][]int, shape.Rows)
	for r := range grid {
		grid[r] = make([]int, shape.Cols)
	}
	for _, t := range tiles {
		grid[t.Pos.Row][t.Pos.Col] = t.Value
	}
	return grid
}

// moveGrid applies dir to grid and returns the settled result.
func moveGrid(t *testing.T, grid [][]int, dir Direction) ([][]int, bool) {
	t.Helper()
	tiles, shape := rowTiles(grid)
	ids := poolAfter(2*shape.Cells(), len(tiles))
	next, moved, err := Apply(tiles, shape, dir, ids)
	if err != nil {
		t.Fatalf("Apply(%s) error: %v", dir, err)
	}
	settled, _ := Cleanup(next)
	return valueGrid(settled, shape), moved
}

func TestScenarioMergePair(t *testing.T) {
	is := is.New(t)
	shape := Shape{Rows: 2, Cols: 2}
	tiles := []Tile{
		{ID: 0, Pos: Position{0, 0}, Value: 1},
		{ID: 1, Pos: Position{0, 1}, Value: 1},
	}
	ids := poolAfter(8, 2)

	next, moved, err := Apply(tiles, shape, DirLeft, ids)
	is.NoErr(err)
	is.True(moved)

	live := slices.DeleteFunc(slices.Clone(next), func(t Tile) bool { return t.Merged })
	is.Equal(len(live), 1)
	is.Equal(live[0].Pos, Position{0, 0})
	is.Equal(live[0].Value, 2)
	is.Equal(live[0].Animation, AnimPopup)
	is.Equal(live[0].ID, 2)

	free := TilesToBoard(next, shape).FreeCells()
	is.Equal(free, []Position{{0, 1}, {1, 0}, {1, 1}})
}

func TestScenarioGapThenMerge(t *testing.T) {
	is := is.New(t)
	got, moved := moveGrid(t, [][]int{{1, 0, 1, 2}}, DirLeft)
	is.True(moved)
	is.Equal(got, [][]int{{2, 2, 0, 0}})
}

func TestScenarioPackedNoMove(t *testing.T) {
	is := is.New(t)
	tiles, shape := rowTiles([][]int{{1, 2}})

	next, moved, err := Apply(tiles, shape, DirLeft, poolAfter(4, 2))
	is.NoErr(err)
	is.True(!moved)
	is.Equal(next, tiles)
	is.True(IsLost(tiles, shape))
}

func TestScenarioCleanupAfterMerge(t *testing.T) {
	is := is.New(t)
	tiles, shape := rowTiles([][]int{{3, 3, 1}, {0, 2, 0}})
	ids := poolAfter(2*shape.Cells(), len(tiles))
	before := ids.Len()

	next, _, err := Apply(tiles, shape, DirLeft, ids)
	is.NoErr(err)
	is.Equal(ids.Len(), before-1)

	settled, released := Cleanup(next)
	slices.Sort(released)
	is.Equal(released, []int{0, 1})
	ids.Release(released...)
	is.Equal(ids.Len(), before+1)
	is.True(ids.Contains(0))
	is.True(ids.Contains(1))

	is.Equal(len(settled), 3)
	for _, tile := range settled {
		is.Equal(tile.Animation, AnimNone)
		is.True(!tile.Merged)
	}
	is.Equal(valueGrid(settled, shape), [][]int{{4, 1, 0}, {2, 0, 0}})
}

func TestCollapseLeft(t *testing.T) {
	tests := []struct {
		name  string
		in    []int
		want  []int
		moved bool
	}{
		{"empty", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, false},
		{"packed distinct", []int{1, 2, 3, 4}, []int{1, 2, 3, 4}, false},
		{"gaps", []int{0, 1, 0, 2}, []int{1, 2, 0, 0}, true},
		{"single at end", []int{0, 0, 0, 5}, []int{5, 0, 0, 0}, true},
		{"pair", []int{1, 1, 0, 0}, []int{2, 0, 0, 0}, true},
		{"triple merges once", []int{1, 1, 1, 0}, []int{2, 1, 0, 0}, true},
		{"quad merges pairwise", []int{2, 2, 2, 2}, []int{3, 3, 0, 0}, true},
		{"split pair", []int{2, 0, 0, 2}, []int{3, 0, 0, 0}, true},
		{"no chain", []int{1, 1, 2, 0}, []int{2, 2, 0, 0}, true},
		{"merge after packed", []int{3, 1, 1, 0}, []int{3, 2, 0, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moved := moveGrid(t, [][]int{tt.in}, DirLeft)
			if !slices.Equal(got[0], tt.want) {
				t.Errorf("collapse %v = %v, want %v", tt.in, got[0], tt.want)
			}
			if moved != tt.moved {
				t.Errorf("collapse %v moved = %v, want %v", tt.in, moved, tt.moved)
			}
		})
	}
}

func TestCollapseRightMirrorsLeft(t *testing.T) {
	rows := [][]int{
		{1, 1, 2, 2},
		{0, 3, 0, 3},
		{1, 2, 3, 4},
		{2, 0, 2, 2},
		{4, 4, 4, 0},
	}
	for _, row := range rows {
		left, lmoved := moveGrid(t, [][]int{row}, DirLeft)
		right, rmoved := moveGrid(t, [][]int{reversed(row)}, DirRight)
		if !slices.Equal(reversed(right[0]), left[0]) {
			t.Errorf("row %v: right mirrored %v, left %v", row, reversed(right[0]), left[0])
		}
		if lmoved != rmoved {
			t.Errorf("row %v: moved left=%v right=%v", row, lmoved, rmoved)
		}
	}
}

func TestVerticalMatchesTransposed(t *testing.T) {
	is := is.New(t)
	grid := [][]int{
		{1, 1, 2, 2},
		{0, 3, 0, 3},
		{1, 2, 3, 4},
		{2, 0, 2, 2},
	}
	transposed := transposeGrid(grid)

	left, _ := moveGrid(t, grid, DirLeft)
	up, _ := moveGrid(t, transposed, DirUp)
	is.Equal(transposeGrid(up), left)

	right, _ := moveGrid(t, grid, DirRight)
	down, _ := moveGrid(t, transposed, DirDown)
	is.Equal(transposeGrid(down), right)
}

func TestNonSquareBoard(t *testing.T) {
	is := is.New(t)
	grid := [][]int{
		{1, 0, 0, 1, 0, 2},
		{0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0},
		{1, 0, 0, 3, 0, 2},
	}

	down, moved := moveGrid(t, grid, DirDown)
	is.True(moved)
	is.Equal(down, [][]int{
		{0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
		{1, 0, 0, 1, 0, 0},
		{2, 0, 0, 3, 0, 3},
	})

	right, moved := moveGrid(t, grid, DirRight)
	is.True(moved)
	is.Equal(right, [][]int{
		{0, 0, 0, 0, 2, 2},
		{0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1},
		{0, 0, 0, 1, 3, 2},
	})
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	is := is.New(t)
	tiles, shape := rowTiles([][]int{{1, 1, 2, 2}, {0, 0, 0, 3}})
	before := slices.Clone(tiles)

	_, _, err := Apply(tiles, shape, DirLeft, poolAfter(16, len(tiles)))
	is.NoErr(err)
	is.Equal(tiles, before)
}

func TestApplyRollsBackOnExhaustion(t *testing.T) {
	is := is.New(t)
	tiles, shape := rowTiles([][]int{{1, 1, 2, 2}})
	ids := poolAfter(5, 4) // one id left; the row needs two

	next, moved, err := Apply(tiles, shape, DirLeft, ids)
	is.True(errors.Is(err, ErrPoolExhausted))
	is.True(!moved)
	is.Equal(next, nil)
	is.Equal(ids.Len(), 1)
}

func TestProbeIsPure(t *testing.T) {
	is := is.New(t)
	tiles, shape := rowTiles([][]int{{1, 1}, {2, 0}})
	before := slices.Clone(tiles)

	is.True(Probe(tiles, shape, DirLeft))
	is.True(Probe(tiles, shape, DirRight))
	is.True(!Probe(tiles, shape, DirUp))
	is.Equal(tiles, before)
}

func TestProbeMatchesApply(t *testing.T) {
	grids := [][][]int{
		{{1, 2}, {2, 1}},
		{{1, 1}, {2, 3}},
		{{0, 1}, {0, 0}},
		{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		{{1, 2, 3}, {4, 5, 6}, {7, 8, 8}},
	}
	for _, grid := range grids {
		tiles, shape := rowTiles(grid)
		for _, dir := range Directions() {
			_, moved, err := Apply(tiles, shape, dir, poolAfter(2*shape.Cells(), len(tiles)))
			if err != nil {
				t.Fatalf("Apply(%v, %s) error: %v", grid, dir, err)
			}
			if got := Probe(tiles, shape, dir); got != moved {
				t.Errorf("Probe(%v, %s) = %v, Apply moved = %v", grid, dir, got, moved)
			}
		}
	}
}

func TestIsLost(t *testing.T) {
	tests := []struct {
		name string
		grid [][]int
		want bool
	}{
		{"checkerboard", [][]int{{1, 2}, {2, 1}}, true},
		{"vertical pair", [][]int{{1, 2}, {1, 3}}, false},
		{"free cell", [][]int{{1, 2}, {3, 0}}, false},
		{"full distinct", [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, true},
		{"single cell", [][]int{{4}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles, shape := rowTiles(tt.grid)
			first := IsLost(tiles, shape)
			if first != tt.want {
				t.Errorf("IsLost = %v, want %v", first, tt.want)
			}
			if second := IsLost(tiles, shape); second != first {
				t.Errorf("IsLost not idempotent: %v then %v", first, second)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	is := is.New(t)
	for _, dir := range Directions() {
		got, err := ParseDirection(dir.String())
		is.NoErr(err)
		is.Equal(got, dir)
	}
	got, err := ParseDirection(" LEFT ")
	is.NoErr(err)
	is.Equal(got, DirLeft)

	_, err = ParseDirection("sideways")
	is.True(err != nil)
}

func TestPopupScore(t *testing.T) {
	is := is.New(t)
	tiles := []Tile{
		{ID: 0, Value: 3, Animation: AnimPopup},
		{ID: 1, Value: 1, Animation: AnimAppear},
		{ID: 2, Value: 2, Animation: AnimPopup},
		{ID: 3, Value: 5},
	}
	is.Equal(PopupScore(tiles), 8+4)
}

func reversed(row []int) []int {
	out := slices.Clone(row)
	slices.Reverse(out)
	return out
}

func transposeGrid(grid [][]int) [][]int {
	out := make([][]int, len(grid[0]))
	for c := range out {
		out[c] = make([]int, len(grid))
		for r := range grid {
			out[c][r] = grid[r][c]
		}
	}
	return out
}
