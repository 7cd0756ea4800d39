package usecase

import (
	"context"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
)

// IndexEntry is exported for testing
func (x *Indexer) IndexEntry(ctx context.Context, entry *model.Entry) (bool, error) {
	return x.indexEntry(ctx, entry)
}

// DeleteVector is exported for testing
func (x *Indexer) DeleteVector(ctx context.Context, id model.EntryID) error {
	return x.deleteVector(ctx, id)
}
