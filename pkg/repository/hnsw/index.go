package hnsw

import (
	"context"
	"math"
	"sync"

	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/coder/hnsw"
	"github.com/m-mizutani/goerr/v2"
)

// Index is an approximate nearest neighbor VectorIndex held in process memory.
//
// Replaced and deleted vectors are orphaned instead of removed from the graph:
// coder/hnsw misbehaves when the last node of a layer is deleted. Orphans are
// skipped at query time and the graph is rebuilt once they dominate.
type Index struct {
	mu        sync.RWMutex
	graph     *hnsw.Graph[uint64]
	dimension int
	m         int
	efSearch  int

	idMap    map[model.EntryID]uint64
	keyMap   map[uint64]model.EntryID
	metadata map[uint64]model.VectorMetadata
	nextKey  uint64
}

var _ interfaces.VectorIndex = &Index{}

type Option func(*Index)

// WithM sets the maximum number of neighbors per node
func WithM(m int) Option {
	return func(x *Index) {
		if m > 0 {
			x.m = m
		}
	}
}

// WithEfSearch sets the candidate list size used while searching
func WithEfSearch(ef int) Option {
	return func(x *Index) {
		if ef > 0 {
			x.efSearch = ef
		}
	}
}

func New(dimension int, opts ...Option) *Index {
	x := &Index{
		dimension: dimension,
		m:         16,
		efSearch:  64,
	}
	for _, opt := range opts {
		opt(x)
	}
	x.reset()
	return x
}

func (x *Index) newGraph() *hnsw.Graph[uint64] {
	g := hnsw.NewGraph[uint64]()
	g.Distance = hnsw.CosineDistance
	g.M = x.m
	g.EfSearch = x.efSearch
	g.Ml = 0.25
	return g
}

func (x *Index) reset() {
	x.graph = x.newGraph()
	x.idMap = make(map[model.EntryID]uint64)
	x.keyMap = make(map[uint64]model.EntryID)
	x.metadata = make(map[uint64]model.VectorMetadata)
	x.nextKey = 0
}

func (x *Index) Upsert(ctx context.Context, vector *model.EntryVector) error {
	if vector == nil || vector.ID == "" {
		return goerr.Wrap(model.ErrValidation, "vector id is required")
	}
	if len(vector.Values) != x.dimension {
		return goerr.Wrap(model.ErrValidation, "dimension mismatch",
			goerr.V(model.EntryIDKey, vector.ID),
			goerr.V("expected", x.dimension),
			goerr.V("got", len(vector.Values)))
	}

	vec := normalize(vector.Values)

	x.mu.Lock()
	defer x.mu.Unlock()

	x.orphan(vector.ID)

	key := x.nextKey
	x.nextKey++
	x.graph.Add(hnsw.MakeNode(key, vec))
	x.idMap[vector.ID] = key
	x.keyMap[key] = vector.ID
	x.metadata[key] = vector.Metadata

	if x.orphanCount() > len(x.idMap) && x.orphanCount() > 1024 {
		x.compact()
	}
	return nil
}

func (x *Index) Delete(ctx context.Context, id model.EntryID) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.orphan(id)
	return nil
}

// orphan detaches id from its graph node. Caller holds the write lock.
func (x *Index) orphan(id model.EntryID) {
	key, ok := x.idMap[id]
	if !ok {
		return
	}
	delete(x.idMap, id)
	delete(x.keyMap, key)
	delete(x.metadata, key)
}

func (x *Index) orphanCount() int {
	return x.graph.Len() - len(x.idMap)
}

// compact rebuilds the graph from live nodes only. Caller holds the write lock.
func (x *Index) compact() {
	live := make([]hnsw.Node[uint64], 0, len(x.keyMap))
	for key := range x.keyMap {
		if vec, ok := x.graph.Lookup(key); ok {
			live = append(live, hnsw.MakeNode(key, vec))
		}
	}

	x.graph = x.newGraph()
	if len(live) > 0 {
		x.graph.Add(live...)
	}
}

func (x *Index) QueryTopK(ctx context.Context, values []float32, k int) ([]model.VectorMatch, error) {
	if k <= 0 {
		return []model.VectorMatch{}, nil
	}
	if len(values) != x.dimension {
		return nil, goerr.Wrap(model.ErrValidation, "dimension mismatch",
			goerr.V("expected", x.dimension),
			goerr.V("got", len(values)))
	}

	query := normalize(values)

	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(x.idMap) == 0 {
		return []model.VectorMatch{}, nil
	}

	// Over-fetch so that orphaned nodes do not starve the result
	limit := min(k+x.orphanCount(), x.graph.Len())
	nodes := x.graph.Search(query, limit)

	matches := make([]model.VectorMatch, 0, k)
	for _, node := range nodes {
		id, ok := x.keyMap[node.Key]
		if !ok {
			continue
		}
		matches = append(matches, model.VectorMatch{
			ID:       id,
			Score:    1 - x.graph.Distance(query, node.Value),
			Metadata: x.metadata[node.Key],
		})
		if len(matches) == k {
			break
		}
	}

	return matches, nil
}

// Len returns the number of live vectors
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.idMap)
}

func normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)

	var sum float64
	for _, f := range out {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return out
	}
	norm := float32(math.Sqrt(sum))
	for i := range out {
		out[i] /= norm
	}
	return out
}
