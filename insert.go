package hnsw

// Insert adds point to the graph and returns its assigned id. The first
// Insert into an empty graph simply bootstraps storage and the entry point
// (component H, spec §4.9 step 0); every subsequent call performs the full
// greedy-descent-then-beam-search-and-link procedure.
func (g *Graph[T, D]) Insert(point T) uint32 {
	level := g.sampler.Sample()

	if g.storage.Len() == 0 {
		id := g.storage.AppendPoint(point)
		g.storage.AppendZeroNode(id)
		for l := 1; l <= level; l++ {
			g.storage.AppendUpperNode(l, id)
		}
		g.storage.SetEntryPoint(id)
		return id
	}

	// Capture the pre-insertion entry point and top layer before this
	// point's own upper-layer nodes are appended, so the descent below
	// operates on the graph as it stood prior to this insertion.
	prevLTop := g.storage.LayerCount() - 1
	epID, _ := g.storage.EntryPoint()

	id := g.storage.AppendPoint(point)
	g.storage.AppendZeroNode(id)
	for l := 1; l <= level; l++ {
		g.storage.AppendUpperNode(l, id)
	}

	s := g.searcher
	s.visited.Clear()

	initCap := 1
	if level >= prevLTop {
		initCap = g.params.EfConstruction
	}
	s.best.SetCap(initCap)
	s.best.Clear()
	s.frontier.Clear()

	epIdx, _ := g.storage.IndexOf(prevLTop, epID)
	epDist := g.distance(point, g.storage.Point(epID))
	s.best.Push(epDist, epIdx)
	s.frontier.Push(candidate[D]{dist: epDist, idx: epIdx})
	s.visited.Insert(epID)

	// Phase 1: greedy single-best descent from the top layer down to
	// level+1, carrying only the single closest node found at each layer
	// forward to the one below (spec §4.9 step 4).
	for l := prevLTop; l > level; l-- {
		layerSearch(g.storage, g.distance, point, l, s)
		nextCap := 1
		if l-1 == level {
			nextCap = g.params.EfConstruction
		}
		lowerLayer(g.storage, l, s, nextCap)
	}

	// Phase 2: beam search with linking from min(level, prevLTop) down to
	// layer 1, growing the new node's own adjacency and back-linking its
	// neighbors' adjacency at each layer along the way (spec §4.9 step 5).
	start := level
	if prevLTop < start {
		start = prevLTop
	}
	for l := start; l >= 1; l-- {
		layerSearch(g.storage, g.distance, point, l, s)
		link(g.storage, g.distance, id, point, l, g.params.M, s.best)
		lowerLayer(g.storage, l, s, g.params.EfConstruction)
	}

	// Phase 3: layer 0, using M0 as the degree bound (spec §4.9 step 6).
	layerSearch(g.storage, g.distance, point, 0, s)
	link(g.storage, g.distance, id, point, 0, g.params.M0, s.best)

	if level > prevLTop {
		g.storage.SetEntryPoint(id)
	}

	return id
}
