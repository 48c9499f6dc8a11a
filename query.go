package hnsw

// Nearest fills dest with up to min(len(dest), ef) points closest to q,
// sorted ascending by distance, and returns the filled prefix (component I,
// spec §4.11, §4.13). If dest is nil, a buffer of length ef is allocated.
// It returns ErrEmptyIndex if the graph has no points. ef controls the
// search beam width at layer 0; larger ef trades query latency for recall.
func (g *Graph[T, D]) Nearest(q T, ef int, dest []Neighbor[D]) ([]Neighbor[D], error) {
	if g.storage.Len() == 0 {
		return dest[:0], ErrEmptyIndex
	}
	if ef < 1 {
		ef = 1
	}

	lTop := g.storage.LayerCount() - 1
	epID, _ := g.storage.EntryPoint()

	initCap := 1
	if lTop == 0 {
		initCap = ef
	}

	s := g.searcher
	s.visited.Clear()
	s.best.SetCap(initCap)
	s.best.Clear()
	s.frontier.Clear()

	epIdx, _ := g.storage.IndexOf(lTop, epID)
	epDist := g.distance(q, g.storage.Point(epID))
	s.best.Push(epDist, epIdx)
	s.frontier.Push(candidate[D]{dist: epDist, idx: epIdx})
	s.visited.Insert(epID)

	for l := lTop; l > 0; l-- {
		layerSearch(g.storage, g.distance, q, l, s)
		nextCap := 1
		if l == 1 {
			nextCap = ef
		}
		lowerLayer(g.storage, l, s, nextCap)
	}

	layerSearch(g.storage, g.distance, q, 0, s)

	if dest == nil {
		dest = make([]Neighbor[D], ef)
	}
	n := s.best.Len()
	if n > len(dest) {
		n = len(dest)
	}
	for i := 0; i < n; i++ {
		d, idx := s.best.At(i)
		dest[i] = Neighbor[D]{ID: g.storage.PointIDOf(0, idx), Distance: d}
	}
	return dest[:n], nil
}

// KNN returns the k points closest to q, sorted ascending by distance. It
// is a convenience wrapper around Nearest that picks an ef wide enough to
// give k a reasonable recall margin (spec §4.11 note on ef vs k).
func (g *Graph[T, D]) KNN(q T, k int) ([]Neighbor[D], error) {
	if k < 1 {
		k = 1
	}
	ef := k + 16
	out, err := g.Nearest(q, ef, make([]Neighbor[D], ef))
	if err != nil {
		return nil, err
	}
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}
