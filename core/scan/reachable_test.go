package scan

import (
	"sync"
	"testing"

	"controller-cleaner/core/graph"

	"github.com/stretchr/testify/assert"
)

func TestReachableSet(t *testing.T) {
	s := NewReachableSet()
	assert.False(t, s.Contains(1))
	assert.True(t, s.TryAdd(1))
	assert.False(t, s.TryAdd(1))
	s.Add(1)
	s.Add(1 << 40)
	assert.True(t, s.Contains(1<<40))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []graph.ID{1, 1 << 40}, s.IDs())
}

func TestReachableSet_Concurrent(t *testing.T) {
	s := NewReachableSet()
	var (
		wg  sync.WaitGroup
		won [8]int
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				if s.TryAdd(graph.ID(i)) {
					won[w]++
				}
			}
		}(w)
	}
	wg.Wait()

	total := 0
	for _, n := range won {
		total += n
	}
	assert.Equal(t, 5000, total, "every id is claimed exactly once")
	assert.Equal(t, 5000, s.Len())
}
