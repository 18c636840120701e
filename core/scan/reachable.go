package scan

import (
	"sort"
	"sync"

	"controller-cleaner/core/graph"

	"github.com/RoaringBitmap/roaring/roaring64"
)

const stripeBits = 5

// ReachableSet is the set of object ids proven in use. Inserts are safe from
// any number of goroutines; ids are spread over lock-striped bitmaps so
// concurrent tasks rarely contend on the same lock.
type ReachableSet struct {
	stripes [1 << stripeBits]stripe
}

type stripe struct {
	mu  sync.Mutex
	ids *roaring64.Bitmap
}

// NewReachableSet returns an empty set.
func NewReachableSet() *ReachableSet {
	s := &ReachableSet{}
	for i := range s.stripes {
		s.stripes[i].ids = roaring64.New()
	}
	return s
}

func (s *ReachableSet) stripe(id graph.ID) *stripe {
	// Fibonacci hashing; file ids tend to share low bits.
	return &s.stripes[(uint64(id)*0x9E3779B97F4A7C15)>>(64-stripeBits)]
}

// Add inserts id. Duplicates are ignored.
func (s *ReachableSet) Add(id graph.ID) {
	st := s.stripe(id)
	st.mu.Lock()
	st.ids.Add(uint64(id))
	st.mu.Unlock()
}

// TryAdd inserts id and reports whether it was absent before.
func (s *ReachableSet) TryAdd(id graph.ID) bool {
	st := s.stripe(id)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.ids.CheckedAdd(uint64(id))
}

// Contains reports whether id has been marked.
func (s *ReachableSet) Contains(id graph.ID) bool {
	st := s.stripe(id)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.ids.Contains(uint64(id))
}

// Len returns the number of marked ids.
func (s *ReachableSet) Len() int {
	n := 0
	for i := range s.stripes {
		st := &s.stripes[i]
		st.mu.Lock()
		n += int(st.ids.GetCardinality())
		st.mu.Unlock()
	}
	return n
}

// IDs returns the marked ids in ascending order.
func (s *ReachableSet) IDs() []graph.ID {
	var ids []graph.ID
	for i := range s.stripes {
		st := &s.stripes[i]
		st.mu.Lock()
		for _, id := range st.ids.ToArray() {
			ids = append(ids, graph.ID(id))
		}
		st.mu.Unlock()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
