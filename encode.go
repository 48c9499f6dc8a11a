package hnsw

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/google/renameio"
)

const encodingVersion = 1

var byteOrder = binary.LittleEndian

func writeVarint(w io.Writer, v int) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], int64(v))
	_, err := w.Write(buf[:n])
	return err
}

func readVarint(r io.ByteReader) (int, error) {
	v, err := binary.ReadVarint(r)
	return int(v), err
}

func writeFixed(w io.Writer, v any) error {
	return binary.Write(w, byteOrder, v)
}

func readFixed(r io.Reader, v any) error {
	return binary.Read(r, byteOrder, v)
}

// Export writes the graph's full state (parameters, sampler position,
// every point, and every layer's adjacency) to w, using encodePoint to
// serialize each point value (spec §6 persisted-state layout). Export only
// supports Graphs backed by MemoryStorage; a DiskStorage-backed graph is
// already durable in its LevelDB file.
func (g *Graph[T, D]) Export(w io.Writer, encodePoint func(io.Writer, T) error) error {
	ms, ok := g.storage.(*MemoryStorage[T])
	if !ok {
		return fmt.Errorf("hnsw: Export requires MemoryStorage, got %T", g.storage)
	}

	epID, hasEntry := ms.EntryPoint()
	if err := writeVarint(w, encodingVersion); err != nil {
		return err
	}
	if err := writeVarint(w, g.params.M); err != nil {
		return err
	}
	if err := writeVarint(w, g.params.M0); err != nil {
		return err
	}
	if err := writeVarint(w, g.params.EfConstruction); err != nil {
		return err
	}
	if err := writeFixed(w, g.params.Seed); err != nil {
		return err
	}
	if err := writeFixed(w, g.sampler.Calls()); err != nil {
		return err
	}
	if err := writeFixed(w, epID); err != nil {
		return err
	}
	if err := writeFixed(w, hasEntry); err != nil {
		return err
	}

	n := ms.Len()
	if err := writeVarint(w, n); err != nil {
		return err
	}
	for id := uint32(0); id < uint32(n); id++ {
		if err := encodePoint(w, ms.Point(id)); err != nil {
			return fmt.Errorf("encoding point %d: %w", id, err)
		}
	}
	for id := uint32(0); id < uint32(n); id++ {
		if err := writeFixed(w, ms.Neighbors(0, id)); err != nil {
			return fmt.Errorf("encoding layer-0 adjacency for %d: %w", id, err)
		}
	}

	nLayers := len(ms.upper)
	if err := writeVarint(w, nLayers); err != nil {
		return err
	}
	for l := 0; l < nLayers; l++ {
		layer := ms.upper[l]
		if err := writeVarint(w, len(layer.nodes)); err != nil {
			return err
		}
		for _, node := range layer.nodes {
			if err := writeFixed(w, node.pointID); err != nil {
				return err
			}
			if err := writeFixed(w, node.nextIndex); err != nil {
				return err
			}
			if err := writeFixed(w, node.neighbors); err != nil {
				return fmt.Errorf("encoding layer %d adjacency: %w", l+1, err)
			}
		}
	}

	return nil
}

// Import replaces the graph's state by reading a stream written by Export.
// decodePoint must read exactly one point value written by the matching
// encodePoint. The graph's distance function is left untouched; storage,
// parameters, and sampler position are replaced, and the searcher scratch
// is reallocated for the imported EfConstruction.
func (g *Graph[T, D]) Import(r io.Reader, decodePoint func(io.Reader) (T, error)) error {
	br := bufio.NewReader(r)

	version, err := readVarint(br)
	if err != nil {
		return err
	}
	if version != encodingVersion {
		return fmt.Errorf("hnsw: incompatible encoding version %d", version)
	}
	m, err := readVarint(br)
	if err != nil {
		return err
	}
	m0, err := readVarint(br)
	if err != nil {
		return err
	}
	efc, err := readVarint(br)
	if err != nil {
		return err
	}
	var seed int64
	if err := readFixed(br, &seed); err != nil {
		return err
	}
	var calls uint64
	if err := readFixed(br, &calls); err != nil {
		return err
	}
	var epID uint32
	if err := readFixed(br, &epID); err != nil {
		return err
	}
	var hasEntry bool
	if err := readFixed(br, &hasEntry); err != nil {
		return err
	}

	n, err := readVarint(br)
	if err != nil {
		return err
	}

	ms := NewMemoryStorage[T](m, m0)
	points := make([]T, n)
	for i := 0; i < n; i++ {
		p, err := decodePoint(br)
		if err != nil {
			return fmt.Errorf("decoding point %d: %w", i, err)
		}
		points[i] = p
	}
	for i := 0; i < n; i++ {
		id := ms.AppendPoint(points[i])
		ms.AppendZeroNode(id)
	}
	for id := uint32(0); id < uint32(n); id++ {
		neighbors := make([]uint32, m0)
		if err := readFixed(br, neighbors); err != nil {
			return fmt.Errorf("decoding layer-0 adjacency for %d: %w", id, err)
		}
		ms.SetNeighbors(0, id, neighbors)
	}

	nLayers, err := readVarint(br)
	if err != nil {
		return err
	}
	ms.upper = make([]upperLayer, nLayers)
	for l := 0; l < nLayers; l++ {
		count, err := readVarint(br)
		if err != nil {
			return err
		}
		layer := upperLayer{byPoint: make(map[uint32]uint32, count)}
		for i := 0; i < count; i++ {
			var pointID, nextIndex uint32
			if err := readFixed(br, &pointID); err != nil {
				return err
			}
			if err := readFixed(br, &nextIndex); err != nil {
				return err
			}
			neighbors := make([]uint32, m)
			if err := readFixed(br, neighbors); err != nil {
				return fmt.Errorf("decoding layer %d adjacency: %w", l+1, err)
			}
			layer.nodes = append(layer.nodes, upperNode{pointID: pointID, neighbors: neighbors, nextIndex: nextIndex})
			layer.byPoint[pointID] = uint32(i)
		}
		ms.upper[l] = layer
	}

	if hasEntry {
		ms.SetEntryPoint(epID)
	}

	g.params.M = m
	g.params.M0 = m0
	g.params.EfConstruction = efc
	g.params.Seed = seed
	g.storage = ms
	g.sampler = restoreSampler(m, seed, calls)
	g.searcher = NewSearcher[T, D](efc)
	return nil
}

// SavedGraph wraps a Graph with a file path, persisting state atomically
// on every call to Save. It is a convenience layer over Export/Import for
// callers who don't need fine-grained control over the io.Writer/Reader.
type SavedGraph[T any, D Ordered] struct {
	*Graph[T, D]
	Path        string
	EncodePoint func(io.Writer, T) error
	DecodePoint func(io.Reader) (T, error)
}

// LoadSavedGraph opens path, importing an existing graph if the file is
// non-empty, or returning a fresh graph built from params otherwise.
func LoadSavedGraph[T any, D Ordered](path string, distance DistanceFunc[T, D], params Params, encodePoint func(io.Writer, T) error, decodePoint func(io.Reader) (T, error)) (*SavedGraph[T, D], error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	g, err := NewWithParams(distance, params)
	if err != nil {
		return nil, err
	}
	if info.Size() > 0 {
		if err := g.Import(bufio.NewReader(f), decodePoint); err != nil {
			return nil, fmt.Errorf("hnsw: importing %s: %w", path, err)
		}
	}

	return &SavedGraph[T, D]{Graph: g, Path: path, EncodePoint: encodePoint, DecodePoint: decodePoint}, nil
}

// Save atomically persists the graph's current state to Path.
func (g *SavedGraph[T, D]) Save() error {
	tmp, err := renameio.TempFile("", g.Path)
	if err != nil {
		return err
	}
	defer tmp.Cleanup()

	wr := bufio.NewWriter(tmp)
	if err := g.Export(wr, g.EncodePoint); err != nil {
		return fmt.Errorf("hnsw: exporting: %w", err)
	}
	if err := wr.Flush(); err != nil {
		return fmt.Errorf("hnsw: flushing: %w", err)
	}
	if err := tmp.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("hnsw: closing atomically: %w", err)
	}
	return nil
}
