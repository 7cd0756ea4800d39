package model

// EmbeddingDimension is the default dimension of the embedding vector.
// Gemini text-embedding-004 produces 768 dimensions.
const EmbeddingDimension = 768

// VectorMetadata is stored next to each vector in the index
type VectorMetadata struct {
	ContentPreview string `json:"contentPreview"`
}

// EntryVector is the derived, regenerable index record of an Entry
type EntryVector struct {
	ID       EntryID
	Values   []float32
	Metadata VectorMetadata
}

// NewEntryVector builds the index record for entry with the preview convention applied
func NewEntryVector(entry *Entry, values []float32, previewLength int) *EntryVector {
	return &EntryVector{
		ID:     entry.ID,
		Values: values,
		Metadata: VectorMetadata{
			ContentPreview: entry.Preview(previewLength),
		},
	}
}

// VectorMatch is one query hit. Matches are returned best first.
type VectorMatch struct {
	ID       EntryID
	Score    float32
	Metadata VectorMetadata
}
