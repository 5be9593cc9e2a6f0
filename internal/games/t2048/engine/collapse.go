package engine

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// IDSource mints identities for merge products.
type IDSource interface {
	Take() (int, error)
	Release(ids ...int)
}

// collapser applies line collapses to a working copy of the tile list.
// A nil ids runs in probe mode: merges are detected but no products are created.
type collapser struct {
	next   []Tile
	index  map[int]int // tile id -> index in next
	ids    IDSource
	minted []int
}

func newCollapser(tiles []Tile, ids IDSource) *collapser {
	c := &collapser{
		next:  slices.Clone(tiles),
		index: make(map[int]int, len(tiles)),
		ids:   ids,
	}
	for i, t := range tiles {
		c.index[t.ID] = i
	}
	return c
}

// destination maps a packed slot of line index to a board position.
func destination(line, slot, size int, reverse, transpose bool) Position {
	if reverse {
		slot = size - 1 - slot
	}
	if transpose {
		return Position{Row: slot, Col: line}
	}
	return Position{Row: line, Col: slot}
}

// collapseLine packs one line toward its processed end and merges equal
// neighbours once per pair in a single pass. A run of three equal values
// merges only the first two.
// Returns true if any tile changed position or any merge happened.
func (c *collapser) collapseLine(line []Cell, index int, reverse, transpose bool) (bool, error) {
	size := len(line)
	row := lo.Filter(line, func(cell Cell, _ int) bool {
		return !cell.Empty()
	})
	if reverse {
		slices.Reverse(row)
	}

	moved := false
	cur, merged := -1, 0
	for j := 0; j <= len(row); j++ {
		if cur == -1 {
			cur = j
			continue
		}

		dst := destination(index, cur-merged, size, reverse, transpose)
		if j == len(row) || row[j].Value != row[cur].Value {
			if c.place(row[cur].ID, dst) {
				moved = true
			}
			cur = j
			continue
		}

		moved = true
		if err := c.merge(row[cur], row[j], dst); err != nil {
			return moved, err
		}
		merged++
		cur = -1
	}
	return moved, nil
}

// place moves a tile to dst and reports whether its position changed.
func (c *collapser) place(id int, dst Position) bool {
	i := c.index[id]
	old := c.next[i].Pos
	c.next[i].Pos = dst
	return old != dst
}

// merge marks both sources for clean-up at dst and, outside probe mode,
// appends their product with a fresh identity.
func (c *collapser) merge(a, b Cell, dst Position) error {
	for _, id := range []int{a.ID, b.ID} {
		i := c.index[id]
		c.next[i].Pos = dst
		c.next[i].Merged = true
	}
	if c.ids == nil {
		return nil
	}

	id, err := c.ids.Take()
	if err != nil {
		return fmt.Errorf("engine: merge at %v: %w", dst, err)
	}
	c.minted = append(c.minted, id)
	c.next = append(c.next, Tile{
		ID:        id,
		Pos:       dst,
		Value:     a.Value + 1,
		Animation: AnimPopup,
	})
	return nil
}

// rollback returns identities minted by a failed move.
func (c *collapser) rollback() {
	if c.ids != nil && len(c.minted) > 0 {
		c.ids.Release(c.minted...)
	}
}
