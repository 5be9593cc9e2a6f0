// Package core holds the types shared by games and front ends: the screen
// buffer, input actions and runtime configuration. It imports nothing
// terminal specific, so games can be tested headless.
package core

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Centered returns a w×h rectangle centered inside r. Odd leftovers go to
// the right and bottom.
func (r Rect) Centered(w, h int) Rect {
	return NewRect(r.X+(r.W-w)/2, r.Y+(r.H-h)/2, w, h)
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}
