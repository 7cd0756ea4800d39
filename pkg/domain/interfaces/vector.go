package interfaces

import (
	"context"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
)

// VectorIndex is a key-addressed nearest neighbor store. It is not partitioned by owner.
// Failures are reported as model.ErrIndexUnavailable.
type VectorIndex interface {
	// Upsert inserts or replaces the vector with the same id
	Upsert(ctx context.Context, vector *model.EntryVector) error

	// Delete removes the vector. Deleting an absent id is not an error.
	Delete(ctx context.Context, id model.EntryID) error

	// QueryTopK returns up to k matches ordered by similarity, best first
	QueryTopK(ctx context.Context, values []float32, k int) ([]model.VectorMatch, error)
}

// Embedder maps text to a fixed-length normalized vector.
// It fails with model.ErrModelUnavailable when the model is not configured or unreachable.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
