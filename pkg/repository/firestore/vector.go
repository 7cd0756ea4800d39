package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

// VectorCollection is the collection holding entry embeddings
const VectorCollection = "entry_vectors"

// vectorDoc is stored with Embedding as firestore.Vector32 so that FindNearest works
type vectorDoc struct {
	ID             model.EntryID      `firestore:"ID"`
	Embedding      firestore.Vector32 `firestore:"Embedding"`
	ContentPreview string             `firestore:"ContentPreview"`
	IndexedAt      time.Time          `firestore:"IndexedAt"`
	Distance       float64            `firestore:"Distance,omitempty"`
}

// VectorIndex is a VectorIndex backed by Firestore vector search
type VectorIndex struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.VectorIndex = &VectorIndex{}

func newVectorIndex(client *firestore.Client) *VectorIndex {
	return &VectorIndex{client: client}
}

func (x *VectorIndex) vectors() *firestore.CollectionRef {
	return x.client.Collection(collectionName(x.collectionPrefix, VectorCollection))
}

func (x *VectorIndex) Upsert(ctx context.Context, vector *model.EntryVector) error {
	if vector == nil || vector.ID == "" {
		return goerr.Wrap(model.ErrValidation, "vector id is required")
	}

	doc := &vectorDoc{
		ID:             vector.ID,
		Embedding:      firestore.Vector32(vector.Values),
		ContentPreview: vector.Metadata.ContentPreview,
		IndexedAt:      time.Now().UTC(),
	}
	if _, err := x.vectors().Doc(vector.ID.String()).Set(ctx, doc); err != nil {
		return goerr.Wrap(model.Classify(model.ErrIndexUnavailable, err), "failed to upsert vector",
			goerr.V(model.EntryIDKey, vector.ID))
	}
	return nil
}

// Delete removes the vector. Firestore deletes of missing documents succeed.
func (x *VectorIndex) Delete(ctx context.Context, id model.EntryID) error {
	if _, err := x.vectors().Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(model.Classify(model.ErrIndexUnavailable, err), "failed to delete vector",
			goerr.V(model.EntryIDKey, id))
	}
	return nil
}

func (x *VectorIndex) QueryTopK(ctx context.Context, values []float32, k int) ([]model.VectorMatch, error) {
	if k <= 0 {
		return []model.VectorMatch{}, nil
	}

	vq := x.vectors().FindNearest("Embedding", firestore.Vector32(values), k, firestore.DistanceMeasureCosine,
		&firestore.FindNearestOptions{DistanceResultField: "Distance"})

	iter := vq.Documents(ctx)
	defer iter.Stop()

	matches := make([]model.VectorMatch, 0, k)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(model.Classify(model.ErrIndexUnavailable, err), "failed to iterate vector search results")
		}

		var d vectorDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(model.Classify(model.ErrIndexUnavailable, err), "failed to unmarshal vector",
				goerr.V(model.EntryIDKey, doc.Ref.ID))
		}

		matches = append(matches, model.VectorMatch{
			ID:       d.ID,
			Score:    float32(1 - d.Distance),
			Metadata: model.VectorMetadata{ContentPreview: d.ContentPreview},
		})
	}

	return matches, nil
}
