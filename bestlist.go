package hnsw

// bestEntry is one (distance, index) pair held by a bestList. Equal-distance
// entries are ordered by index; indices are assigned in insertion order
// within each layer, so the first-inserted point wins a tie (spec §4.2).
type bestEntry[D Ordered] struct {
	dist D
	idx  uint32
}

func less[D Ordered](a, b bestEntry[D]) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.idx < b.idx
}

// bestList is the bounded-best candidate list (component B): a fixed-
// capacity, ascending-sorted collection of (distance, index) pairs. It is
// implemented as an insertion-sorted slice, which spec §4.2 calls out as
// the canonical approach since cap is always small (≤ a few hundred).
type bestList[D Ordered] struct {
	entries []bestEntry[D]
	cap     int
}

// newBestList returns an empty list with the given capacity.
func newBestList[D Ordered](cap int) *bestList[D] {
	return &bestList[D]{
		entries: make([]bestEntry[D], 0, cap),
		cap:     cap,
	}
}

// Push inserts (d, idx) in sorted position. If the list is at capacity and
// (d, idx) does not sort before the current worst entry, it is rejected. If
// the list was at capacity, the previous worst entry is evicted. Returns
// true iff the entry is now stored in the list.
func (b *bestList[D]) Push(d D, idx uint32) bool {
	e := bestEntry[D]{dist: d, idx: idx}

	if len(b.entries) == b.cap {
		if len(b.entries) == 0 {
			return false
		}
		if !less(e, b.entries[len(b.entries)-1]) {
			return false
		}
		b.entries = b.entries[:len(b.entries)-1]
	}

	pos := b.searchInsertPos(e)
	b.entries = append(b.entries, bestEntry[D]{})
	copy(b.entries[pos+1:], b.entries[pos:])
	b.entries[pos] = e
	return true
}

func (b *bestList[D]) searchInsertPos(e bestEntry[D]) int {
	lo, hi := 0, len(b.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if less(b.entries[mid], e) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// PopWorst removes and returns the worst (largest-distance) entry.
func (b *bestList[D]) PopWorst() (D, uint32, bool) {
	if len(b.entries) == 0 {
		var zero D
		return zero, 0, false
	}
	e := b.entries[len(b.entries)-1]
	b.entries = b.entries[:len(b.entries)-1]
	return e.dist, e.idx, true
}

// PeekBest returns the best (smallest-distance) entry without removing it.
func (b *bestList[D]) PeekBest() (D, uint32, bool) {
	if len(b.entries) == 0 {
		var zero D
		return zero, 0, false
	}
	e := b.entries[0]
	return e.dist, e.idx, true
}

// PeekWorst returns the worst (largest-distance) entry without removing it.
func (b *bestList[D]) PeekWorst() (D, uint32, bool) {
	if len(b.entries) == 0 {
		var zero D
		return zero, 0, false
	}
	e := b.entries[len(b.entries)-1]
	return e.dist, e.idx, true
}

// Len returns the number of entries currently held.
func (b *bestList[D]) Len() int {
	return len(b.entries)
}

// Clear empties the list while retaining its backing array.
func (b *bestList[D]) Clear() {
	b.entries = b.entries[:0]
}

// SetCap changes the list's capacity, trimming worst entries if it shrinks
// below the current length.
func (b *bestList[D]) SetCap(cap int) {
	b.cap = cap
	if len(b.entries) > cap {
		b.entries = b.entries[:cap]
	}
}

// At returns the i-th best entry (0 = best) without removing anything.
func (b *bestList[D]) At(i int) (D, uint32) {
	e := b.entries[i]
	return e.dist, e.idx
}

// Cap returns the list's current capacity.
func (b *bestList[D]) Cap() int {
	return b.cap
}

// Fill copies up to len(dest) ids, best-first, into dest and returns the
// written prefix.
func (b *bestList[D]) Fill(dest []uint32) []uint32 {
	n := len(dest)
	if len(b.entries) < n {
		n = len(b.entries)
	}
	for i := 0; i < n; i++ {
		dest[i] = b.entries[i].idx
	}
	return dest[:n]
}
