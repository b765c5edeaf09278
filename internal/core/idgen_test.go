package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGeneratorDistinct(t *testing.T) {
	gen := NewIDGenerator(42)
	seen := map[string]bool{}
	for i := 0; i < 10000; i++ {
		id := gen.Next()
		require.Len(t, id, idLength)
		require.False(t, seen[id], "duplicate id %s after %d calls", id, i)
		seen[id] = true
	}
}

func TestIDGeneratorAlphabet(t *testing.T) {
	gen := NewIDGenerator(7)
	for i := 0; i < 100; i++ {
		for _, r := range gen.Next() {
			assert.Contains(t, idAlphabet, string(r))
		}
	}
}

func TestIDGeneratorSeedChangesSequence(t *testing.T) {
	a := NewIDGenerator(1)
	b := NewIDGenerator(2)
	assert.NotEqual(t, a.Next(), b.Next())

	c := NewIDGenerator(1)
	d := NewIDGenerator(1)
	assert.Equal(t, c.Next(), d.Next())
}

func TestIDGeneratorConcurrentCallers(t *testing.T) {
	gen := NewIDGenerator(99)
	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				id := gen.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 4000)
}
