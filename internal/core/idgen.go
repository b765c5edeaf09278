package core

import (
	"math/bits"
	"sync"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength   = 8
	// idSpace is len(idAlphabet)^idLength.
	idSpace uint64 = 218340105584896
	// idStride is coprime with idSpace, so counter*idStride mod idSpace is a
	// bijection and consecutive identifiers do not share a visible prefix.
	idStride uint64 = 137438953471
)

// IDGenerator hands out short identifiers that are distinct for the lifetime
// of the generator. It is owned by one conversion; the mutex only protects
// callers that share a generator across goroutines.
type IDGenerator struct {
	mu      sync.Mutex
	seed    uint64
	counter uint64
}

func NewIDGenerator(seed uint64) *IDGenerator {
	return &IDGenerator{seed: seed % idSpace}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	n := g.counter
	g.counter++
	g.mu.Unlock()

	hi, lo := bits.Mul64(n, idStride)
	_, rem := bits.Div64(hi%idSpace, lo, idSpace)
	value := (rem + g.seed) % idSpace

	out := make([]byte, idLength)
	for i := idLength - 1; i >= 0; i-- {
		out[i] = idAlphabet[value%uint64(len(idAlphabet))]
		value /= uint64(len(idAlphabet))
	}
	return string(out)
}
