package hnsw

// layerSearch is the greedy best-first beam search within a single layer
// (component G, spec §4.7). It consumes searcher.frontier, expanding nodes
// until no unvisited candidate can possibly improve the result, and leaves
// searcher.best holding the up-to-`ef` closest points found at this layer,
// sorted ascending. The frontier and best list must already be seeded with
// the layer's starting node before this is called (see Insert/Nearest and
// lowerLayer).
func layerSearch[T any, D Ordered](storage Storage[T], dist DistanceFunc[T, D], q T, layer int, s *Searcher[T, D]) {
	for s.frontier.Len() > 0 {
		c := s.frontier.Pop()

		if s.best.Len() == s.best.Cap() {
			if worst, _, ok := s.best.PeekWorst(); ok && worst < c.dist {
				break
			}
		}

		for _, n := range storage.Neighbors(layer, c.idx) {
			if n == NilID {
				break
			}
			vid := storage.PointIDOf(layer, n)
			if !s.visited.Insert(vid) {
				continue
			}
			dv := dist(q, storage.Point(vid))
			if s.best.Push(dv, n) {
				s.frontier.Push(candidate[D]{dist: dv, idx: n})
			}
		}
	}
}

// lowerLayer implements the between-layer transition described in spec
// §4.8: it keeps only the single best entry found at `layer`, translates
// its index into `layer`-1's table, and reseeds the frontier and best list
// (resized to newCap) with that one entry. The visited set is deliberately
// left untouched, since layer-0 point ids are globally unique and carry
// over across descents within one search call.
func lowerLayer[T any, D Ordered](storage Storage[T], layer int, s *Searcher[T, D], newCap int) {
	s.frontier.Clear()

	d, idx, ok := s.best.PeekBest()
	if !ok {
		return
	}
	nextIdx := storage.NextIndex(layer, idx)

	s.best.Clear()
	s.best.SetCap(newCap)
	s.best.Push(d, nextIdx)
	s.frontier.Push(candidate[D]{dist: d, idx: nextIdx})
}
