package hnsw

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/syndtr/goleveldb/leveldb"
)

// DiskStorage is a Storage implementation backed by an on-disk LevelDB
// key-value store, fronted by a bounded in-memory LRU cache of decoded
// node records. It trades per-call latency for the ability to hold graphs
// larger than memory, following the same cache-in-front-of-a-log-structured
// store shape used by on-disk HNSW implementations in other languages.
//
// A DiskStorage is not safe for concurrent use; like MemoryStorage it
// assumes a single calling goroutine (spec §5).
type DiskStorage[T any] struct {
	db    *leveldb.DB
	cache *lru.Cache[string, any]

	m, m0      int
	zeroLen    uint32
	upperLen   []uint32
	entryPoint uint32
	hasEntry   bool
}

// diskZeroNode is the gob-encoded record stored at a layer-0 key.
type diskZeroNode[T any] struct {
	Point     T
	Neighbors []uint32
}

// diskUpperNode is the gob-encoded record stored at an upper-layer key.
type diskUpperNode struct {
	PointID   uint32
	Neighbors []uint32
	NextIndex uint32
}

// OpenDiskStorage opens (creating if necessary) a LevelDB database at path
// and wraps it in an LRU cache holding up to cacheSize decoded node
// records. m and m0 must match the Params the owning Graph was built with.
func OpenDiskStorage[T any](path string, m, m0, cacheSize int) (*DiskStorage[T], error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("hnsw: opening disk storage: %w", err)
	}
	cache, err := lru.New[string, any](cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("hnsw: allocating cache: %w", err)
	}
	s := &DiskStorage[T]{db: db, cache: cache, m: m, m0: m0}
	if err := s.loadMeta(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close flushes and closes the underlying LevelDB handle.
func (s *DiskStorage[T]) Close() error {
	return s.db.Close()
}

const metaKey = "meta"

type diskMeta struct {
	ZeroLen    uint32
	UpperLen   []uint32
	EntryPoint uint32
	HasEntry   bool
}

func (s *DiskStorage[T]) loadMeta() error {
	v, err := s.db.Get([]byte(metaKey), nil)
	if err == leveldb.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("hnsw: reading meta: %w", err)
	}
	var m diskMeta
	if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&m); err != nil {
		return fmt.Errorf("hnsw: decoding meta: %w", err)
	}
	s.zeroLen = m.ZeroLen
	s.upperLen = m.UpperLen
	s.entryPoint = m.EntryPoint
	s.hasEntry = m.HasEntry
	return nil
}

func (s *DiskStorage[T]) saveMeta() {
	m := diskMeta{ZeroLen: s.zeroLen, UpperLen: s.upperLen, EntryPoint: s.entryPoint, HasEntry: s.hasEntry}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		panic(fmt.Sprintf("hnsw: encoding meta: %v", err))
	}
	if err := s.db.Put([]byte(metaKey), buf.Bytes(), nil); err != nil {
		panic(fmt.Sprintf("hnsw: writing meta: %v", err))
	}
}

func zeroKey(id uint32) string {
	return "z" + string(uint32le(id))
}

func upperKey(layer int, idx uint32) string {
	return fmt.Sprintf("u%d:%s", layer, string(uint32le(idx)))
}

func byPointKey(layer int, id uint32) string {
	return fmt.Sprintf("p%d:%s", layer, string(uint32le(id)))
}

func uint32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func (s *DiskStorage[T]) getZero(id uint32) diskZeroNode[T] {
	key := zeroKey(id)
	if v, ok := s.cache.Get(key); ok {
		return v.(diskZeroNode[T])
	}
	raw, err := s.db.Get([]byte(key), nil)
	if err != nil {
		panic(fmt.Sprintf("hnsw: reading layer-0 node %d: %v", id, err))
	}
	var n diskZeroNode[T]
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&n); err != nil {
		panic(fmt.Sprintf("hnsw: decoding layer-0 node %d: %v", id, err))
	}
	s.cache.Add(key, n)
	return n
}

func (s *DiskStorage[T]) putZero(id uint32, n diskZeroNode[T]) {
	key := zeroKey(id)
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(n); err != nil {
		panic(fmt.Sprintf("hnsw: encoding layer-0 node %d: %v", id, err))
	}
	if err := s.db.Put([]byte(key), buf.Bytes(), nil); err != nil {
		panic(fmt.Sprintf("hnsw: writing layer-0 node %d: %v", id, err))
	}
	s.cache.Add(key, n)
}

func (s *DiskStorage[T]) getUpper(layer int, idx uint32) diskUpperNode {
	key := upperKey(layer, idx)
	if v, ok := s.cache.Get(key); ok {
		return v.(diskUpperNode)
	}
	raw, err := s.db.Get([]byte(key), nil)
	if err != nil {
		panic(fmt.Sprintf("hnsw: reading layer %d node %d: %v", layer, idx, err))
	}
	var n diskUpperNode
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&n); err != nil {
		panic(fmt.Sprintf("hnsw: decoding layer %d node %d: %v", layer, idx, err))
	}
	s.cache.Add(key, n)
	return n
}

func (s *DiskStorage[T]) putUpper(layer int, idx uint32, n diskUpperNode) {
	key := upperKey(layer, idx)
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(n); err != nil {
		panic(fmt.Sprintf("hnsw: encoding layer %d node %d: %v", layer, idx, err))
	}
	if err := s.db.Put([]byte(key), buf.Bytes(), nil); err != nil {
		panic(fmt.Sprintf("hnsw: writing layer %d node %d: %v", layer, idx, err))
	}
	s.cache.Add(key, n)
}

func (s *DiskStorage[T]) AppendPoint(p T) uint32 {
	id := s.zeroLen
	s.zeroLen++
	s.putZero(id, diskZeroNode[T]{Point: p})
	s.saveMeta()
	return id
}

func (s *DiskStorage[T]) Point(id uint32) T {
	return s.getZero(id).Point
}

func (s *DiskStorage[T]) AppendZeroNode(id uint32) {
	n := s.getZero(id)
	n.Neighbors = nilFilled(s.m0)
	s.putZero(id, n)
}

func (s *DiskStorage[T]) AppendUpperNode(layer int, id uint32) uint32 {
	for layer > len(s.upperLen) {
		s.upperLen = append(s.upperLen, 0)
	}
	li := layer - 1
	idx := s.upperLen[li]
	s.upperLen[li]++

	var next uint32
	if i, ok := s.IndexOf(layer-1, id); ok {
		next = i
	}

	s.putUpper(layer, idx, diskUpperNode{PointID: id, Neighbors: nilFilled(s.m), NextIndex: next})
	key := byPointKey(layer, id)
	var buf bytes.Buffer
	gob.NewEncoder(&buf).Encode(idx)
	if err := s.db.Put([]byte(key), buf.Bytes(), nil); err != nil {
		panic(fmt.Sprintf("hnsw: writing by-point index for layer %d id %d: %v", layer, id, err))
	}
	s.cache.Add(key, idx)
	s.saveMeta()
	return idx
}

func (s *DiskStorage[T]) Neighbors(layer int, idx uint32) []uint32 {
	if layer == 0 {
		return s.getZero(idx).Neighbors
	}
	return s.getUpper(layer, idx).Neighbors
}

func (s *DiskStorage[T]) SetNeighbors(layer int, idx uint32, neighbors []uint32) {
	cp := make([]uint32, len(neighbors))
	copy(cp, neighbors)
	if layer == 0 {
		n := s.getZero(idx)
		n.Neighbors = cp
		s.putZero(idx, n)
		return
	}
	n := s.getUpper(layer, idx)
	n.Neighbors = cp
	s.putUpper(layer, idx, n)
}

func (s *DiskStorage[T]) PointIDOf(layer int, idx uint32) uint32 {
	if layer == 0 {
		return idx
	}
	return s.getUpper(layer, idx).PointID
}

func (s *DiskStorage[T]) IndexOf(layer int, id uint32) (uint32, bool) {
	if layer == 0 {
		if id < s.zeroLen {
			return id, true
		}
		return 0, false
	}
	key := byPointKey(layer, id)
	if v, ok := s.cache.Get(key); ok {
		return v.(uint32), true
	}
	raw, err := s.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return 0, false
	}
	if err != nil {
		panic(fmt.Sprintf("hnsw: reading by-point index for layer %d id %d: %v", layer, id, err))
	}
	var idx uint32
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&idx); err != nil {
		panic(fmt.Sprintf("hnsw: decoding by-point index for layer %d id %d: %v", layer, id, err))
	}
	s.cache.Add(key, idx)
	return idx, true
}

func (s *DiskStorage[T]) NextIndex(layer int, idx uint32) uint32 {
	return s.getUpper(layer, idx).NextIndex
}

func (s *DiskStorage[T]) LayerCount() int {
	n := len(s.upperLen)
	if s.zeroLen > 0 {
		n++
	}
	return n
}

func (s *DiskStorage[T]) Size(layer int) int {
	if layer == 0 {
		return int(s.zeroLen)
	}
	return int(s.upperLen[layer-1])
}

func (s *DiskStorage[T]) EntryPoint() (uint32, bool) {
	return s.entryPoint, s.hasEntry
}

func (s *DiskStorage[T]) SetEntryPoint(id uint32) {
	s.entryPoint = id
	s.hasEntry = true
	s.saveMeta()
}

func (s *DiskStorage[T]) Len() int {
	return int(s.zeroLen)
}
