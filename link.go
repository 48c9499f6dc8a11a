package hnsw

// link splices a newly-created node into the graph at the given layer
// (component J, spec §4.10), using the current contents of best as the
// candidate neighborhood found by the preceding layerSearch call.
func link[T any, D Ordered](storage Storage[T], dist DistanceFunc[T, D], id uint32, point T, layer int, mMax int, best *bestList[D]) {
	xIdx, _ := storage.IndexOf(layer, id)

	n := best.Len()
	if n > mMax {
		n = mMax
	}

	adj := nilFilled(mMax)
	placed := make([]uint32, n)
	for i := 0; i < n; i++ {
		_, idx := best.At(i)
		adj[i] = idx
		placed[i] = idx
	}
	storage.SetNeighbors(layer, xIdx, adj)

	for _, vIdx := range placed {
		addBackEdge(storage, dist, layer, vIdx, xIdx, point, mMax)
	}
}

// addBackEdge attempts to add x as a neighbor of v: into v's first free
// slot if one exists, or replacing v's current worst neighbor w if x is
// closer to v than w is. If neither applies, v is left unchanged; the
// replaced edge (if any) is simply dropped, with no rebalancing.
func addBackEdge[T any, D Ordered](storage Storage[T], dist DistanceFunc[T, D], layer int, vIdx, xIdx uint32, xPoint T, mMax int) {
	existing := storage.Neighbors(layer, vIdx)
	buf := make([]uint32, len(existing))
	copy(buf, existing)

	for i, nb := range buf {
		if nb == NilID {
			buf[i] = xIdx
			storage.SetNeighbors(layer, vIdx, buf)
			return
		}
	}

	vPoint := storage.Point(storage.PointIDOf(layer, vIdx))

	worstPos := -1
	var worstDist D
	for i, nb := range buf {
		d := dist(vPoint, storage.Point(storage.PointIDOf(layer, nb)))
		if worstPos == -1 || worstDist < d {
			worstDist = d
			worstPos = i
		}
	}
	if worstPos == -1 {
		return
	}

	if dist(vPoint, xPoint) < worstDist {
		buf[worstPos] = xIdx
		storage.SetNeighbors(layer, vIdx, buf)
	}
}
