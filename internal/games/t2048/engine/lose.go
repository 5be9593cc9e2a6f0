package engine

// IsLost returns true if no direction would change the board.
// It only probes, so it is safe to call any number of times.
func IsLost(tiles []Tile, shape Shape) bool {
	for _, dir := range Directions() {
		if Probe(tiles, shape, dir) {
			return false
		}
	}
	return true
}

// MaxValue returns the highest tile level, or 0 for an empty list.
func MaxValue(tiles []Tile) int {
	maxVal := 0
	for _, t := range tiles {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}
