package heap

// BucketEntry is a payload paired with a bounded small-integer distance,
// used by BucketFrontier.
type BucketEntry[V any] struct {
	Dist int
	Val  V
}

// BucketFrontier is a priority queue specialized for small, bounded
// non-negative integer distances (e.g. Hamming distance over a 128-bit
// key, where Dist never exceeds 128). It gives O(1) push and
// amortized O(1) pop-best by bucketing entries by distance, trading memory
// (maxDist+1 slices) for the log-factor a binary heap would otherwise cost.
//
// It is an optional optimization of candidate frontier C (spec §9); the
// generic Heap[T] satisfies the same role for any ordered distance type.
type BucketFrontier[V any] struct {
	buckets [][]V
	size    int
	cursor  int
}

// NewBucketFrontier allocates a frontier for distances in [0, maxDist].
func NewBucketFrontier[V any](maxDist int) *BucketFrontier[V] {
	return &BucketFrontier[V]{
		buckets: make([][]V, maxDist+1),
	}
}

// Reset empties the frontier while keeping its bucket slices allocated.
func (b *BucketFrontier[V]) Reset() {
	for i := range b.buckets {
		b.buckets[i] = b.buckets[i][:0]
	}
	b.size = 0
	b.cursor = 0
}

// Len returns the number of entries currently queued.
func (b *BucketFrontier[V]) Len() int {
	return b.size
}

// Push adds v at the given distance. dist must be within [0, maxDist].
func (b *BucketFrontier[V]) Push(dist int, v V) {
	b.buckets[dist] = append(b.buckets[dist], v)
	b.size++
	if dist < b.cursor {
		b.cursor = dist
	}
}

// PopBest removes and returns the entry with the smallest distance
// currently queued, and that distance.
func (b *BucketFrontier[V]) PopBest() (V, int) {
	for b.cursor < len(b.buckets) && len(b.buckets[b.cursor]) == 0 {
		b.cursor++
	}
	bucket := b.buckets[b.cursor]
	v := bucket[len(bucket)-1]
	b.buckets[b.cursor] = bucket[:len(bucket)-1]
	b.size--
	return v, b.cursor
}
