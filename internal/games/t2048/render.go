package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048/engine"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// levelColors maps tile levels to colors; higher levels reuse the last one.
var levelColors = []core.Color{
	core.ColorDefault,
	core.ColorWhite,         // 2
	core.ColorBrightWhite,   // 4
	core.ColorYellow,        // 8
	core.ColorOrange,        // 16
	core.ColorRed,           // 32
	core.ColorBrightRed,     // 64
	core.ColorBrightYellow,  // 128
	core.ColorGreen,         // 256
	core.ColorBrightGreen,   // 512
	core.ColorCyan,          // 1024
	core.ColorBrightCyan,    // 2048
	core.ColorBrightMagenta, // 4096+
}

// TileColor returns the display color of a tile.
func TileColor(t engine.Tile) core.Color {
	if t.Animation == engine.AnimAppear {
		return core.ColorGray
	}
	return levelColors[core.Clamp(t.Value, 0, len(levelColors)-1)]
}

// boardSize returns the drawn board dimensions including borders.
func boardSize(shape engine.Shape) (int, int) {
	return shape.Cols*cellWidth + 1, shape.Rows*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.orch == nil {
		return
	}

	if g.tooSmall {
		dst.TextCentered(g.screenH/2, "Window too small", core.ColorDefault)
		dst.TextCentered(g.screenH/2+1, "Please resize terminal", core.ColorDefault)
		return
	}

	frame := g.orch.Frame()
	boardW, boardH := boardSize(frame.Shape)
	board := core.NewRect((g.screenW-boardW)/2, hudHeight+1, boardW, boardH)

	g.renderHUD(dst, frame, board)
	renderGrid(dst, frame.Shape, board)
	renderTiles(dst, frame, board)
	g.renderOverlays(dst, frame, board)
}

func (g *Game) renderHUD(dst *core.Screen, frame Frame, board core.Rect) {
	title := g.Title()
	dst.Text(board.X+(board.W-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.Text(board.X, 1, fmt.Sprintf("Score: %d", frame.Score), core.ColorDefault)

	info := fmt.Sprintf("Max: %d  Moves: %d", frame.MaxNumber(), frame.Moves)
	dst.Text(max(board.X, board.Right()-len(info)), 1, info, core.ColorDefault)

	if g.warning != "" {
		dst.Text(board.X+(board.W-len(g.warning))/2, 2, g.warning, core.ColorRed)
	}
}

// renderGrid draws the cell borders of a rows×cols grid.
func renderGrid(dst *core.Screen, shape engine.Shape, board core.Rect) {
	for r := range shape.Rows + 1 {
		for c := range shape.Cols + 1 {
			px := board.X + c*cellWidth
			py := board.Y + r*cellHeight
			dst.Set(px, py, junction(r, c, shape), core.ColorGray)

			if c < shape.Cols {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─', core.ColorGray)
				}
			}
			if r < shape.Rows {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

func junction(r, c int, shape engine.Shape) rune {
	top, bottom := r == 0, r == shape.Rows
	left, right := c == 0, c == shape.Cols
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case left:
		return '├'
	case right:
		return '┤'
	default:
		return '┼'
	}
}

// renderTiles draws live tiles. Merge sources share a cell with their
// product and are hidden behind it.
func renderTiles(dst *core.Screen, frame Frame, board core.Rect) {
	for _, t := range frame.Tiles {
		if t.Merged {
			continue
		}
		label := strconv.Itoa(t.Number())
		if len(label) > cellWidth-1 {
			label = "2^" + strconv.Itoa(t.Value)
		}
		x := board.X + t.Pos.Col*cellWidth + 1 + (cellWidth-1-len(label))/2
		y := board.Y + t.Pos.Row*cellHeight + 1
		dst.Text(x, y, label, TileColor(t))
	}
}

func (g *Game) renderOverlays(dst *core.Screen, frame Frame, board core.Rect) {
	switch {
	case g.err != nil:
		drawOverlay(dst, board, core.ColorBrightRed, "ERROR", "Press R to restart")
	case g.paused:
		drawOverlay(dst, board, core.ColorDefault, "PAUSED", "Press P to resume")
	case frame.Lost:
		drawOverlay(dst, board, core.ColorBrightRed,
			"YOU LOSE",
			fmt.Sprintf("Score: %d", frame.Score),
			"Press R to restart")
	}
}

// drawOverlay draws a boxed message centered on the board.
func drawOverlay(dst *core.Screen, board core.Rect, color core.Color, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	box := board.Centered(width+4, len(lines)+2)

	dst.Fill(box, ' ')
	dst.Box(box, color)
	for i, line := range lines {
		dst.Text(box.X+(box.W-len(line))/2, box.Y+1+i, line, color)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | P: Pause | R: New game | Q: Quit"
}
