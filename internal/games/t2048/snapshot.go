package t2048

// Snapshot captures the game state for determinism tests and score records.
type Snapshot struct {
	Tick    uint64
	Variant string
	Score   int
	Moves   int
	Lost    bool
	Phase   Phase
	Grid    [][]int // displayed numbers in row-major order; 0 is empty
	MaxTile int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	frame := g.orch.Frame()
	return Snapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		Score:   frame.Score,
		Moves:   frame.Moves,
		Lost:    frame.Lost,
		Phase:   frame.Phase,
		Grid:    NumberGrid(frame),
		MaxTile: frame.MaxNumber(),
	}
}

// NumberGrid renders a frame as displayed numbers. Merge sources are
// skipped so each cell shows the tile a player sees.
func NumberGrid(frame Frame) [][]int {
	grid := make([][]int, frame.Shape.Rows)
	for r := range grid {
		grid[r] = make([]int, frame.Shape.Cols)
	}
	for _, t := range frame.Tiles {
		if t.Merged {
			continue
		}
		grid[t.Pos.Row][t.Pos.Col] = t.Number()
	}
	return grid
}
