package wire

import (
	"math/rand/v2"
	"time"
)

// Source produces the value an initiator sends.
type Source func() Value

// Fixed returns a Source that always yields v.
func Fixed(v Value) Source {
	return func() Value { return v }
}

// TimeSeeded returns a Source backed by a PCG generator seeded from the
// current time. Values are non-negative, like C's random().
func TimeSeeded() Source {
	return Seeded(uint64(time.Now().UnixNano()))
}

// Seeded returns a deterministic Source for the given seed.
func Seeded(seed uint64) Source {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	return func() Value { return Value(rng.Int32()) }
}
