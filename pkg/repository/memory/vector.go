package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// VectorIndex is an exact cosine-similarity index held in memory
type VectorIndex struct {
	mu      sync.RWMutex
	vectors map[model.EntryID]*model.EntryVector
}

var _ interfaces.VectorIndex = &VectorIndex{}

func NewVectorIndex() *VectorIndex {
	return &VectorIndex{
		vectors: make(map[model.EntryID]*model.EntryVector),
	}
}

func (x *VectorIndex) Upsert(ctx context.Context, vector *model.EntryVector) error {
	if vector == nil || vector.ID == "" {
		return goerr.Wrap(model.ErrValidation, "vector id is required")
	}
	if len(vector.Values) == 0 {
		return goerr.Wrap(model.ErrValidation, "vector values are required", goerr.V(model.EntryIDKey, vector.ID))
	}

	stored := &model.EntryVector{
		ID:       vector.ID,
		Values:   make([]float32, len(vector.Values)),
		Metadata: vector.Metadata,
	}
	copy(stored.Values, vector.Values)

	x.mu.Lock()
	defer x.mu.Unlock()
	x.vectors[vector.ID] = stored
	return nil
}

func (x *VectorIndex) Delete(ctx context.Context, id model.EntryID) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.vectors, id)
	return nil
}

func (x *VectorIndex) QueryTopK(ctx context.Context, values []float32, k int) ([]model.VectorMatch, error) {
	if k <= 0 {
		return []model.VectorMatch{}, nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	matches := make([]model.VectorMatch, 0, len(x.vectors))
	for _, v := range x.vectors {
		if len(v.Values) != len(values) {
			continue
		}
		matches = append(matches, model.VectorMatch{
			ID:       v.ID,
			Score:    float32(cosineSimilarity(values, v.Values)),
			Metadata: v.Metadata,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Len returns the number of stored vectors
func (x *VectorIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.vectors)
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
