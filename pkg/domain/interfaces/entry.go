package interfaces

import (
	"context"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
)

// EntryRepository is the Primary Record Store for journal entries.
// Failures other than a missing record are reported as model.ErrStoreUnavailable.
type EntryRepository interface {
	// Create stores a new entry. ID, CreatedAt and UpdatedAt are assigned when empty.
	Create(ctx context.Context, entry *model.Entry) (*model.Entry, error)

	// Get returns the entry owned by ownerID. Missing or foreign entries yield model.ErrNotFound.
	Get(ctx context.Context, ownerID model.UserID, id model.EntryID) (*model.Entry, error)

	// Update replaces content of an owned entry and refreshes UpdatedAt
	Update(ctx context.Context, ownerID model.UserID, id model.EntryID, content string) (*model.Entry, error)

	// Delete removes an owned entry. Missing or foreign entries yield model.ErrNotFound.
	Delete(ctx context.Context, ownerID model.UserID, id model.EntryID) error

	// FindByIDs returns the subset of ids owned by ownerID, in no particular order.
	// Unknown ids are skipped.
	FindByIDs(ctx context.Context, ownerID model.UserID, ids []model.EntryID) ([]*model.Entry, error)

	// ListByOwner returns all entries of ownerID, newest first
	ListByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Entry, error)

	// ForEach calls fn for every entry of every owner. Iteration stops at the first error from fn.
	ForEach(ctx context.Context, fn func(entry *model.Entry) error) error
}
