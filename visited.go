package hnsw

// visitedSet is a membership filter over point ids (component D), cleared
// once per top-level search call and reused across all layer descents
// within that call, since layer-0 ids are globally unique (spec §4.4, §9).
type visitedSet struct {
	seen map[uint32]struct{}
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[uint32]struct{})}
}

// Insert marks id visited and reports whether it was not already present.
func (v *visitedSet) Insert(id uint32) bool {
	if _, ok := v.seen[id]; ok {
		return false
	}
	v.seen[id] = struct{}{}
	return true
}

// Clear empties the set while retaining its backing map.
func (v *visitedSet) Clear() {
	clear(v.seen)
}
