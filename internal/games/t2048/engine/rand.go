package engine

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// Rand is the randomness the engine needs: pool shuffles and spawn values.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a ChaCha-based generator. The same seed always yields the
// same sequence; seed 0 draws a fresh seed from the system entropy source.
func NewRand(seed int64) Rand {
	if seed == 0 {
		return frand.New()
	}
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, uint64(seed))
	return frand.NewCustom(key, 1024, 12)
}
