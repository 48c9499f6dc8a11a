package hnsw

import "github.com/nearworld/hnsw/heap"

// candidate is one (distance, per-layer index) pair carried on the
// frontier heap. At layer 0 idx is the point id; at layer > 0 it is the
// node's index within that layer's table (spec §4.7 note on namespaces).
type candidate[D Ordered] struct {
	dist D
	idx  uint32
}

func (c candidate[D]) Less(o candidate[D]) bool {
	return c.dist < o.dist
}

// Searcher holds the only growable, reusable allocations on the hot path
// (component K): the candidate frontier, the bounded best list, and the
// visited set. A single Searcher is meant to be reused across many Insert
// and Nearest calls by the same goroutine; its capacity grows
// monotonically and it is always left clear on entry to a top-level call.
type Searcher[T any, D Ordered] struct {
	best     *bestList[D]
	frontier heap.Heap[candidate[D]]
	visited  *visitedSet
}

// NewSearcher allocates scratch space with initial capacity cap. A Graph
// grows its own Searcher's capacity automatically; most callers never
// construct one directly.
func NewSearcher[T any, D Ordered](cap int) *Searcher[T, D] {
	s := &Searcher[T, D]{
		best:    newBestList[D](cap),
		visited: newVisitedSet(),
	}
	s.frontier.Init(make([]candidate[D], 0, cap))
	return s
}
