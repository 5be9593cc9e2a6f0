package engine

import "errors"

var (
	// ErrPoolExhausted is returned when no tile identity is left.
	ErrPoolExhausted = errors.New("engine: identity pool exhausted")
	// ErrNoSpaceAvailable is returned when no free cell is left to spawn into.
	ErrNoSpaceAvailable = errors.New("engine: no space available")
	// ErrNoSpawnValues is returned when the spawn value set is empty.
	ErrNoSpawnValues = errors.New("engine: empty spawn value set")
)

// IDPool holds unused tile identities. Take hands out the oldest entry;
// Release appends ids not already present.
type IDPool struct {
	queue []int
	free  map[int]struct{}
}

// NewIDPool returns a pool holding 0..capacity-1 in shuffled order.
func NewIDPool(capacity int, rng Rand) *IDPool {
	p := &IDPool{
		queue: make([]int, 0, capacity),
		free:  make(map[int]struct{}, capacity),
	}
	for id := range capacity {
		p.queue = append(p.queue, id)
		p.free[id] = struct{}{}
	}
	rng.Shuffle(len(p.queue), func(i, j int) {
		p.queue[i], p.queue[j] = p.queue[j], p.queue[i]
	})
	return p
}

// Take removes and returns the oldest unused id.
func (p *IDPool) Take() (int, error) {
	if len(p.queue) == 0 {
		return 0, ErrPoolExhausted
	}
	id := p.queue[0]
	p.queue = p.queue[1:]
	delete(p.free, id)
	return id, nil
}

// Release returns ids to the pool. Ids already present are ignored.
func (p *IDPool) Release(ids ...int) {
	for _, id := range ids {
		if _, ok := p.free[id]; ok {
			continue
		}
		p.free[id] = struct{}{}
		p.queue = append(p.queue, id)
	}
}

// Len returns the number of unused ids.
func (p *IDPool) Len() int {
	return len(p.queue)
}

// Contains reports whether id is unused.
func (p *IDPool) Contains(id int) bool {
	_, ok := p.free[id]
	return ok
}

// PositionPool is the queue of free cells that spawns draw from.
type PositionPool struct {
	queue []Position
	rng   Rand
}

// NewPositionPool returns a pool with every cell of shape in shuffled order.
func NewPositionPool(shape Shape, rng Rand) *PositionPool {
	p := &PositionPool{rng: rng}
	p.Refill(shape.Positions())
	return p
}

// Refill replaces the pool contents with positions, shuffled.
func (p *PositionPool) Refill(positions []Position) {
	p.queue = append(p.queue[:0], positions...)
	p.rng.Shuffle(len(p.queue), func(i, j int) {
		p.queue[i], p.queue[j] = p.queue[j], p.queue[i]
	})
}

// Take removes and returns the next free cell.
func (p *PositionPool) Take() (Position, error) {
	if len(p.queue) == 0 {
		return Position{}, ErrNoSpaceAvailable
	}
	pos := p.queue[0]
	p.queue = p.queue[1:]
	return pos, nil
}

// Len returns the number of queued cells.
func (p *PositionPool) Len() int {
	return len(p.queue)
}
