package hnsw

// Analyzer exposes structural metrics about a Graph's layers, useful for
// diagnosing degree-bound saturation or layer imbalance after a large
// batch of inserts.
type Analyzer[T any, D Ordered] struct {
	Graph *Graph[T, D]
}

// Height returns the number of layers currently allocated (L_top + 1).
func (a *Analyzer[T, D]) Height() int {
	return a.Graph.storage.LayerCount()
}

// Topography returns the number of nodes in each layer, layer 0 first.
func (a *Analyzer[T, D]) Topography() []int {
	n := a.Graph.storage.LayerCount()
	out := make([]int, n)
	for l := 0; l < n; l++ {
		out[l] = a.Graph.storage.Size(l)
	}
	return out
}

// Connectivity returns, for each layer, the average number of non-NIL
// neighbor slots filled across that layer's nodes.
func (a *Analyzer[T, D]) Connectivity() []float64 {
	n := a.Graph.storage.LayerCount()
	out := make([]float64, n)
	for l := 0; l < n; l++ {
		size := a.Graph.storage.Size(l)
		if size == 0 {
			continue
		}
		var sum int
		for idx := 0; idx < size; idx++ {
			for _, nb := range a.Graph.storage.Neighbors(l, uint32(idx)) {
				if nb == NilID {
					break
				}
				sum++
			}
		}
		out[l] = float64(sum) / float64(size)
	}
	return out
}
