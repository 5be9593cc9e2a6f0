package core

import "strings"

// Cell is one character of the screen with its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' '}

// Screen is a fixed-size grid of colored runes. Games draw into it and the
// front end turns it into terminal output. Writes outside the grid are
// dropped, so callers can draw partially visible text without clipping.
type Screen struct {
	width, height int
	cells         []Cell // row-major
}

// NewScreen returns a blank width×height screen.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Resize changes the dimensions and keeps whatever still fits in the
// top-left corner.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if s.cells != nil && width == s.width && height == s.height {
		return
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = blankCell
	}
	for y := range min(s.height, height) {
		copy(cells[y*width:y*width+min(s.width, width)], s.cells[y*s.width:])
	}
	s.width, s.height, s.cells = width, height, cells
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Set writes one rune.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// Cell returns the cell at (x, y), or a blank one outside the grid.
func (s *Screen) Cell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// Text writes text left to right starting at (x, y).
func (s *Screen) Text(x, y int, text string, c Color) {
	for _, r := range text {
		s.Set(x, y, r, c)
		x++
	}
}

// TextCentered writes text horizontally centered on row y.
func (s *Screen) TextCentered(y int, text string, c Color) {
	s.Text((s.width-len([]rune(text)))/2, y, text, c)
}

// Fill sets every cell of r to fill with the default color.
func (s *Screen) Fill(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, fill, ColorDefault)
		}
	}
}

// Box outlines r with box-drawing characters.
func (s *Screen) Box(r Rect, c Color) {
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		s.Set(x, r.Y, '─', c)
		s.Set(x, bottom, '─', c)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│', c)
		s.Set(right, y, '│', c)
	}
	s.Set(r.X, r.Y, '┌', c)
	s.Set(right, r.Y, '┐', c)
	s.Set(r.X, bottom, '└', c)
	s.Set(right, bottom, '┘', c)
}

// String returns the runes without colors, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(len(s.cells) + s.height)
	for i, cell := range s.cells {
		if i > 0 && i%s.width == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(cell.Rune)
	}
	return sb.String()
}
