package engine

// Spawn creates one tile at the next free cell with a value drawn uniformly
// from values. Both pools are checked before either is touched, so a failed
// spawn consumes nothing.
func Spawn(free *PositionPool, ids *IDPool, values []int, rng Rand) (Tile, error) {
	switch {
	case len(values) == 0:
		return Tile{}, ErrNoSpawnValues
	case ids.Len() == 0:
		return Tile{}, ErrPoolExhausted
	case free.Len() == 0:
		return Tile{}, ErrNoSpaceAvailable
	}

	pos, _ := free.Take()
	id, _ := ids.Take()
	return Tile{
		ID:        id,
		Pos:       pos,
		Value:     values[rng.Intn(len(values))],
		Animation: AnimAppear,
	}, nil
}
