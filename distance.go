package hnsw

import (
	"math"
	"math/bits"

	"github.com/chewxy/math32"
	"github.com/viterin/vek/vek32"
)

// DistanceFunc computes the distance between two points of type T, returning
// a value of the totally-ordered type D. The core never inspects T; it only
// ever compares D values. A DistanceFunc must be symmetric and must return
// its minimum value (and only its minimum value) for distance(x, x).
type DistanceFunc[T any, D Ordered] func(a, b T) D

// Ordered is satisfied by any type the graph can use as a distance: it only
// needs a total order, which every built-in numeric type already has.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// EuclideanFloat32 computes the (non-squared) Euclidean distance between two
// float32 vectors using vek's vectorized kernel. Vectors must have equal
// length.
func EuclideanFloat32(a, b []float32) float32 {
	diff := vek32.Sub(a, b)
	sq := vek32.Mul(diff, diff)
	return math32.Sqrt(vek32.Sum(sq))
}

// CosineFloat32 computes the cosine distance (1 - cosine similarity) between
// two float32 vectors. Returns 0 if either vector has zero norm, matching
// the convention that cosine similarity is undefined (treated as maximally
// similar) for a zero vector.
func CosineFloat32(a, b []float32) float32 {
	dot := vek32.Dot(a, b)
	normA := math32.Sqrt(vek32.Dot(a, a))
	normB := math32.Sqrt(vek32.Dot(b, b))
	if normA == 0 || normB == 0 {
		return 0
	}
	return 1 - dot/(normA*normB)
}

// DotFloat32 treats the negative dot product as a distance, suitable for
// normalized embeddings where maximizing inner product is the similarity
// metric of interest.
func DotFloat32(a, b []float32) float32 {
	return -vek32.Dot(a, b)
}

// OrderedFloat32Bits reinterprets a non-negative float32 as a uint32 whose
// natural ordering matches the float's ordering, per spec §4.1. This lets a
// metric expose float32-derived distances as a totally-ordered integer
// type. The bits are taken as they are: -0 and NaN inputs map to values
// that sort above every positive float.
func OrderedFloat32Bits(f float32) uint32 {
	return math.Float32bits(f)
}

// HammingBits computes the Hamming distance between two equal-length bit
// strings packed as uint64 words (e.g. a 128-bit key as 2 words). It is the
// discrete metric exercised by the self-retrieval and recall scenarios.
func HammingBits(a, b []uint64) int {
	var d int
	for i := range a {
		d += bits.OnesCount64(a[i] ^ b[i])
	}
	return d
}

// HammingBytes computes the Hamming distance between two equal-length byte
// strings, one bit per bit of each byte.
func HammingBytes(a, b []byte) int {
	var d int
	for i := range a {
		d += bits.OnesCount8(a[i] ^ b[i])
	}
	return d
}
