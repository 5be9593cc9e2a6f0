package engine

import "github.com/samber/lo"

// Cleanup strips merge sources and clears animations on the survivors.
// It returns the survivors and the ids of the removed tiles.
func Cleanup(tiles []Tile) ([]Tile, []int) {
	kept := lo.FilterMap(tiles, func(t Tile, _ int) (Tile, bool) {
		t.Animation = AnimNone
		return t, !t.Merged
	})
	released := lo.FilterMap(tiles, func(t Tile, _ int) (int, bool) {
		return t.ID, t.Merged
	})
	return kept, released
}

// PopupScore returns the sum of displayed numbers over merge products.
func PopupScore(tiles []Tile) int {
	return lo.SumBy(tiles, func(t Tile) int {
		if t.Animation != AnimPopup {
			return 0
		}
		return t.Number()
	})
}
